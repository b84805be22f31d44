package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/catalog"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

func testCatalog() *catalog.Cache {
	return catalog.NewFromData(
		[]model.Product{
			{ID: "p1", Name: "Bolo de Cenoura", Value: 500, UnityType: model.UnityTypeUnit},
			{ID: "p2", Name: "Salpicão", Value: 1000, UnityType: model.UnityTypeWeight},
			{ID: "p3", Name: "Lasanha à Bolonhesa", Value: 3500, UnityType: model.UnityTypeUnit, CategoryID: "c1"},
			{ID: "p4", Name: "Molho Branco", Value: 0, UnityType: model.UnityTypeUnit, CategoryID: "c2"},
		},
		[]model.Category{
			{ID: "c1", Name: "Massas"},
			{ID: "c2", Name: "Molhos"},
		},
	)
}

func TestAppendBlank(t *testing.T) {
	d := &model.Draft{ID: "d1"}

	item := AppendBlank(d)

	require.Len(t, d.Items, 1)
	assert.Equal(t, "", item.ProductID)
	assert.Equal(t, model.UnityTypeUnit, item.UnityType)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, int64(0), item.Price)
	assert.Equal(t, 0, item.Position)

	// Sempre acrescenta, nunca mescla.
	AppendBlank(d)
	require.Len(t, d.Items, 2)
	assert.Equal(t, 1, d.Items[1].Position)
}

func TestSelectProductThenClearPreservesQuantity(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)

	require.NoError(t, SetQuantity(d, 0, "0.75"))
	require.NoError(t, SelectProduct(d, 0, "p2", cache))

	assert.Equal(t, "Salpicão", d.Items[0].Name)
	assert.Equal(t, model.UnityTypeWeight, d.Items[0].UnityType)
	assert.Equal(t, int64(1000), d.Items[0].Price)
	assert.Equal(t, 0.75, d.Items[0].Quantity, "seleção não pode mexer na quantidade")

	// Limpar a seleção zera os campos de produto e mantém a quantidade.
	require.NoError(t, SelectProduct(d, 0, "", cache))
	assert.Equal(t, "", d.Items[0].ProductID)
	assert.Equal(t, "", d.Items[0].Name)
	assert.Equal(t, model.UnityTypeUnit, d.Items[0].UnityType)
	assert.Equal(t, int64(0), d.Items[0].Price)
	assert.Equal(t, 0.75, d.Items[0].Quantity)
}

func TestSelectProductOutOfRange(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)

	assert.ErrorIs(t, SelectProduct(d, 3, "p1", cache), ErrIndexOutOfRange)
	assert.ErrorIs(t, SelectProduct(d, -1, "p1", cache), ErrIndexOutOfRange)
	assert.ErrorIs(t, SetQuantity(d, 9, "1"), ErrIndexOutOfRange)
	assert.ErrorIs(t, Remove(d, 1), ErrIndexOutOfRange)
}

func TestSelectProductUnknownID(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)

	err := SelectProduct(d, 0, "nao-existe", cache)
	require.Error(t, err)
	// Linha fica intacta.
	assert.Equal(t, "", d.Items[0].ProductID)
	assert.Equal(t, 1.0, d.Items[0].Quantity)
}

func TestSetQuantityCoercesGarbageToZero(t *testing.T) {
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)

	require.NoError(t, SetQuantity(d, 0, "abc"))
	assert.Equal(t, 0.0, d.Items[0].Quantity)

	require.NoError(t, SetQuantity(d, 0, ""))
	assert.Equal(t, 0.0, d.Items[0].Quantity)

	require.NoError(t, SetQuantity(d, 0, "-2"))
	assert.Equal(t, 0.0, d.Items[0].Quantity)

	require.NoError(t, SetQuantity(d, 0, " 2.5 "))
	assert.Equal(t, 2.5, d.Items[0].Quantity)
}

func TestRemoveShiftsPositions(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)
	AppendBlank(d)
	AppendBlank(d)
	require.NoError(t, SelectProduct(d, 0, "p1", cache))
	require.NoError(t, SelectProduct(d, 1, "p2", cache))
	require.NoError(t, SelectProduct(d, 2, "p3", cache))

	require.NoError(t, Remove(d, 1))

	require.Len(t, d.Items, 2)
	assert.Equal(t, "p1", d.Items[0].ProductID)
	assert.Equal(t, "p3", d.Items[1].ProductID)
	assert.Equal(t, 0, d.Items[0].Position)
	assert.Equal(t, 1, d.Items[1].Position)
}

func TestAddFromCatalogAlwaysAppends(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	p3, _ := cache.FindByID("p3")

	AddFromCatalog(d, p3, 1, []string{"p4"}, cache)
	AddFromCatalog(d, p3, 2, nil, cache)

	// Mesmo produto duas vezes: duas linhas, não uma com quantidade somada.
	require.Len(t, d.Items, 2)
	assert.Equal(t, 1.0, d.Items[0].Quantity)
	assert.Equal(t, 2.0, d.Items[1].Quantity)

	require.Len(t, d.Items[0].SubProducts, 1)
	assert.Equal(t, "p4", d.Items[0].SubProducts[0].ProductID)
	assert.Equal(t, "Molho Branco", d.Items[0].SubProducts[0].Name)
	assert.Empty(t, d.Items[1].SubProducts)
}

func TestAddFromCatalogDefaultsQuantityToMinimum(t *testing.T) {
	cache := testCatalog()
	d := &model.Draft{ID: "d1"}
	p2, _ := cache.FindByID("p2")

	AddFromCatalog(d, p2, 0, nil, cache)
	assert.Equal(t, 0.25, d.Items[0].Quantity)

	// Subproduto desconhecido é ignorado em silêncio.
	p1, _ := cache.FindByID("p1")
	AddFromCatalog(d, p1, 0, []string{"fantasma"}, cache)
	assert.Equal(t, 1.0, d.Items[1].Quantity)
	assert.Empty(t, d.Items[1].SubProducts)
}

func TestSetQuantityCoercesNonFiniteToZero(t *testing.T) {
	d := &model.Draft{ID: "d1"}
	AppendBlank(d)

	// ParseFloat aceita estas grafias, mas nenhuma serve como quantidade.
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity"} {
		require.NoError(t, SetQuantity(d, 0, raw))
		assert.Equal(t, 0.0, d.Items[0].Quantity, "entrada %q", raw)
	}
}
