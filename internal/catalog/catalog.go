// Package catalog guarda o recorte do catálogo usado por um formulário de
// pedido. A carga acontece uma vez por abertura de formulário; o preço que
// vale para o item é o copiado na seleção, então uma foto levemente
// desatualizada do catálogo não corrompe pedido nenhum.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// Produtos além desta página única ficam indisponíveis para seleção.
// Limite conhecido de escala, não um defeito a contornar em silêncio.
const loadLimit = 200

// Categorias cujos produtos exibem o seletor de subprodutos (molhos etc.).
var subProductCategoryNames = []string{"Massas", "Massa"}

// Cache é a foto do catálogo de uma sessão de formulário. Depois de
// carregado é somente leitura, então pode ser lido sem trava.
type Cache struct {
	products   []model.Product
	categories []model.Category
	byID       map[string]model.Product
}

// Load busca produtos (página única) e categorias na API de negócio.
func Load(ctx context.Context, api *apiclient.Client) (*Cache, error) {
	page, err := api.ListProducts(ctx, "", 1, loadLimit)
	if err != nil {
		return nil, err
	}
	categories, err := api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Product, len(page.Data))
	for _, p := range page.Data {
		byID[p.ID] = p
	}

	return &Cache{
		products:   page.Data,
		categories: categories,
		byID:       byID,
	}, nil
}

// NewFromData monta uma foto de catálogo a partir de dados já carregados.
func NewFromData(products []model.Product, categories []model.Category) *Cache {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Cache{products: products, categories: categories, byID: byID}
}

func (c *Cache) Products() []model.Product    { return c.products }
func (c *Cache) Categories() []model.Category { return c.categories }

// FindByID resolve um produto pelo id para aplicar uma seleção na tela.
func (c *Cache) FindByID(id string) (model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory filtra os produtos da foto por categoria, preservando a ordem
// de carga. Usado nas abas de navegação do formulário.
func (c *Cache) ByCategory(categoryID string) []model.Product {
	var out []model.Product
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// ShowsSubProducts decide se o produto exibe o seletor de subprodutos,
// com base no nome da categoria a que pertence.
func (c *Cache) ShowsSubProducts(p model.Product) bool {
	if p.CategoryID == "" {
		return false
	}
	for _, cat := range c.categories {
		if cat.ID != p.CategoryID {
			continue
		}
		for _, name := range subProductCategoryNames {
			if strings.EqualFold(cat.Name, name) {
				return true
			}
		}
	}
	return false
}

// Registry associa cada rascunho aberto à sua foto de catálogo.
type Registry struct {
	mu      sync.RWMutex
	byDraft map[string]*Cache
}

func NewRegistry() *Registry {
	return &Registry{byDraft: make(map[string]*Cache)}
}

func (r *Registry) Put(draftID string, cache *Cache) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDraft[draftID] = cache
}

func (r *Registry) Get(draftID string) (*Cache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cache, ok := r.byDraft[draftID]
	return cache, ok
}

func (r *Registry) Drop(draftID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byDraft, draftID)
}
