package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wasitemo/store-management-sub000/internal/domain/inventory"
)

func TestAggregate_CuentaLineasPorProducto(t *testing.T) {
	qty := inventory.Aggregate([]inventory.Line{
		{ProductID: "b"}, {ProductID: "a"}, {ProductID: "b"},
	})

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, qty)
	assert.Equal(t, []string{"a", "b"}, inventory.SortedProductIDs(qty))
}

func TestAggregate_Vacio(t *testing.T) {
	qty := inventory.Aggregate(nil)
	assert.Empty(t, qty)
	assert.Empty(t, inventory.SortedProductIDs(qty))
}
