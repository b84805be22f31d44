package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// CreateOrder envia um pedido novo. O servidor aplica a requisição de forma
// atômica e devolve o pedido com id e número de sequência preenchidos.
func (c *Client) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	var created model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateOrder regrava um pedido existente por inteiro.
func (c *Client) UpdateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	var updated model.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+order.ID, nil, order, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, page, limit int) (Page[model.Order], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var result Page[model.Order]
	err := c.do(ctx, http.MethodGet, "/orders", q, nil, &result)
	return result, err
}
