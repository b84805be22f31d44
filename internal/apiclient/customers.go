package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// FindCustomerByPhone busca no máximo um cliente pelo telefone exato.
// Zero resultados viram ErrNotFound; mais de um não é esperado e o
// primeiro é usado.
func (c *Client) FindCustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("limit", "1")
	q.Set("page", "1")

	var page Page[model.Customer]
	if err := c.do(ctx, http.MethodGet, "/customers", q, nil, &page); err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, ErrNotFound
	}
	return &page.Data[0], nil
}

// GetCustomer devolve o cliente com seus endereços, na ordem do servidor.
func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+id, nil, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) ListCustomers(ctx context.Context, name string, page, limit int) (Page[model.Customer], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if name != "" {
		q.Set("name", name)
	}

	var result Page[model.Customer]
	err := c.do(ctx, http.MethodGet, "/customers", q, nil, &result)
	return result, err
}

func (c *Client) CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	var created model.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", nil, customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	var updated model.Customer
	if err := c.do(ctx, http.MethodPut, "/customers/"+customer.ID, nil, customer, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
