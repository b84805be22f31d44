package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

func sampleCache() *Cache {
	return NewFromData(
		[]model.Product{
			{ID: "p1", Name: "Bolo de Cenoura", Value: 500, UnityType: model.UnityTypeUnit, CategoryID: "doces"},
			{ID: "p2", Name: "Lasanha à Bolonhesa", Value: 3500, UnityType: model.UnityTypeUnit, CategoryID: "massas"},
			{ID: "p3", Name: "Talharim", Value: 2800, UnityType: model.UnityTypeWeight, CategoryID: "massas"},
			{ID: "p4", Name: "Refrigerante", Value: 800, UnityType: model.UnityTypeVolume},
		},
		[]model.Category{
			{ID: "doces", Name: "Doces"},
			{ID: "massas", Name: "Massas"},
		},
	)
}

func TestFindByID(t *testing.T) {
	cache := sampleCache()

	p, ok := cache.FindByID("p2")
	require.True(t, ok)
	assert.Equal(t, "Lasanha à Bolonhesa", p.Name)

	_, ok = cache.FindByID("nada")
	assert.False(t, ok)
}

func TestByCategoryPreservesLoadOrder(t *testing.T) {
	cache := sampleCache()

	massas := cache.ByCategory("massas")
	require.Len(t, massas, 2)
	assert.Equal(t, "p2", massas[0].ID)
	assert.Equal(t, "p3", massas[1].ID)

	assert.Empty(t, cache.ByCategory("inexistente"))
}

func TestShowsSubProducts(t *testing.T) {
	cache := sampleCache()

	lasanha, _ := cache.FindByID("p2")
	bolo, _ := cache.FindByID("p1")
	refri, _ := cache.FindByID("p4")

	assert.True(t, cache.ShowsSubProducts(lasanha), "produto da categoria Massas exibe subprodutos")
	assert.False(t, cache.ShowsSubProducts(bolo))
	assert.False(t, cache.ShowsSubProducts(refri), "produto sem categoria não exibe subprodutos")
}

func TestShowsSubProductsAcceptsSingularAlias(t *testing.T) {
	cache := NewFromData(
		[]model.Product{{ID: "p1", CategoryID: "c1"}},
		[]model.Category{{ID: "c1", Name: "massa"}},
	)
	p, _ := cache.FindByID("p1")
	assert.True(t, cache.ShowsSubProducts(p))
}

func TestLoadFetchesSinglePageAndCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			// Uma página única de limite fixo; o que passar disso fica
			// indisponível para seleção.
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "200", r.URL.Query().Get("limit"))
			json.NewEncoder(w).Encode(apiclient.Page[model.Product]{
				Data: []model.Product{{ID: "p1", Name: "Bolo de Cenoura", Value: 500}},
			})
		case "/categories":
			json.NewEncoder(w).Encode([]model.Category{{ID: "c1", Name: "Doces"}})
		default:
			t.Errorf("chamada inesperada: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	cache, err := Load(context.Background(), apiclient.New(server.URL, "t"))
	require.NoError(t, err)
	assert.Len(t, cache.Products(), 1)
	assert.Len(t, cache.Categories(), 1)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	cache := sampleCache()

	registry.Put("d1", cache)
	got, ok := registry.Get("d1")
	require.True(t, ok)
	assert.Same(t, cache, got)

	registry.Drop("d1")
	_, ok = registry.Get("d1")
	assert.False(t, ok)
}
