package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// ListProducts lista produtos paginados, com filtro opcional por nome.
func (c *Client) ListProducts(ctx context.Context, name string, page, limit int) (Page[model.Product], error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	if name != "" {
		q.Set("name", name)
	}

	var result Page[model.Product]
	err := c.do(ctx, http.MethodGet, "/products", q, nil, &result)
	return result, err
}

// ListCategories devolve todas as categorias; a API não pagina este recurso.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
