package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalog_AnyColumnOrder(t *testing.T) {
	in := "\ufeffSKU,Price,Name,Stock\n" +
		"CAFE-500, 25000.50 ,Café molido,12\n" +
		",,,\n" +
		"TE-01,n/a,Té verde,\n"

	rows, err := ReadCatalog(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "CAFE-500", rows[0].Request.SKU)
	assert.Equal(t, "Café molido", rows[0].Request.Name)
	assert.Equal(t, "25000.5", rows[0].Request.Price.String())
	assert.EqualValues(t, 12, rows[0].Request.Stock)

	assert.Equal(t, 4, rows[1].Line)
	assert.True(t, rows[1].Request.Price.IsZero(), "precio inválido = 0")
	assert.EqualValues(t, 0, rows[1].Request.Stock)
}

func TestReadCatalog_Latin1(t *testing.T) {
	in := "name,sku\nCaf\xe9,C-1\n"

	rows, err := ReadCatalog(strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Request.Name)
}

func TestReadCatalog_MissingRequiredColumn(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("name,price\nA,1\n"), false)
	assert.ErrorContains(t, err, `"sku"`)
}

func TestReadCatalog_LineIsPhysicalWithQuotedNewlines(t *testing.T) {
	in := "name,sku,description\n" +
		"Café,C-1,\"Tostión media\nbolsa de 500 g\norigen Huila\"\n" +
		"\n" +
		"Té,T-1,verde\n" +
		"Cacao,K-1,\"sin cerrar\n"

	_, err := ReadCatalog(strings.NewReader(in), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 7", "el error del csv reporta la línea física")

	rows, err := ReadCatalog(strings.NewReader(strings.TrimSuffix(in, "Cacao,K-1,\"sin cerrar\n")), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Tostión media\nbolsa de 500 g\norigen Huila", rows[0].Request.Description)
	assert.Equal(t, 6, rows[1].Line)
	assert.Equal(t, "T-1", rows[1].Request.SKU)
}
