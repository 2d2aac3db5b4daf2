package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/pkg/validate"
)

type item struct {
	StuffID string `json:"stuff_id" validate:"required"`
}

type request struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Items      []item `json:"items" validate:"required,min=1,dive"`
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validate.Struct(request{CustomerID: "c1", Items: []item{{StuffID: "p1"}}}))
}

func TestStruct_ErroresConRutaJSON(t *testing.T) {
	err := validate.Struct(request{Items: []item{{}}})
	require.Error(t, err)

	var fe validate.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "required", fe["customer_id"])
	assert.Equal(t, "required", fe["items[0].stuff_id"])
	assert.Equal(t, "campos inválidos: customer_id: required, items[0].stuff_id: required", err.Error())
}

func TestStruct_ItemsVacios(t *testing.T) {
	err := validate.Struct(request{CustomerID: "c1", Items: []item{}})

	var fe validate.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "min", fe["items"])
}
