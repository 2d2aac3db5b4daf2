package inventory

import (
	"maps"
	"slices"
)

// Line es un renglón solicitado: el producto y cómo se identifica la unidad.
type Line struct {
	ProductID   string
	Identifiers Identifiers
}

// Aggregate cuenta cuántas líneas pide cada producto.
func Aggregate(lines []Line) map[string]int {
	qty := make(map[string]int, len(lines))
	for _, l := range lines {
		qty[l.ProductID]++
	}
	return qty
}

// SortedProductIDs devuelve los productos en orden ascendente. Es el orden en que se
// bloquean las filas de products para que dos órdenes nunca se esperen en cruz.
func SortedProductIDs(qty map[string]int) []string {
	return slices.Sorted(maps.Keys(qty))
}
