package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingAddress_ScanJSONB(t *testing.T) {
	var a ShippingAddress
	require.NoError(t, a.Scan([]byte(`{"email":"a@b.c","full_name":"Ada","city":"Leeds","postcode":"LS1","country":"United Kingdom"}`)))
	assert.Equal(t, "Ada", a.FullName)
	assert.Equal(t, "LS1", a.Postcode)

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, ShippingAddress{}, a)

	assert.Error(t, a.Scan(42))
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus("Shipped"))
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestProduct_FindVariation(t *testing.T) {
	p := &Product{Variations: []ProductVariation{{ID: "v1", Weight: "50g"}, {ID: "v2", Weight: "100g"}}}
	require.NotNil(t, p.FindVariation("v2"))
	assert.Equal(t, "100g", p.FindVariation("v2").Weight)
	assert.Nil(t, p.FindVariation("v3"))
}
