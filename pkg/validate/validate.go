// Package validate envuelve go-playground/validator con nombres de campo JSON.
package validate

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// FieldErrors mapea campo (ruta JSON) a la regla que falló.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return "campos inválidos: " + strings.Join(parts, ", ")
}

// Struct valida s según sus tags `validate`. Devuelve FieldErrors o nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(FieldErrors, len(ves))
	for _, fe := range ves {
		out[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateOrderRequest.items[0].stuff_id" -> "items[0].stuff_id".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
