package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

func TestRequestCarriesBearerAndJSONHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer credencial-teste", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode([]model.Category{{ID: "c1", Name: "Massas"}})
	}))
	defer server.Close()

	client := New(server.URL, "credencial-teste")
	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Massas", categories[0].Name)
}

func TestListProductsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "bolo", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode(Page[model.Product]{
			Data:  []model.Product{{ID: "p1", Name: "Bolo de Cenoura", Value: 500, UnityType: model.UnityTypeUnit}},
			Total: 11, Page: 2, Limit: 10,
		})
	}))
	defer server.Close()

	client := New(server.URL, "t")
	page, err := client.ListProducts(context.Background(), "bolo", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(500), page.Data[0].Value)
}

func TestNotFoundBecomesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "t")
	_, err := client.GetOrder(context.Background(), "pedido-x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestErrorBodyParsedWhenJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"pedido sem itens"}`))
	}))
	defer server.Close()

	client := New(server.URL, "t")
	_, err := client.CreateOrder(context.Background(), &model.Order{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "pedido sem itens", apiErr.Message)
}

func TestErrorBodyGuardedWhenNotJSON(t *testing.T) {
	// Corpo de erro que não é JSON válido não pode derrubar o chamador.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>Bad Gateway</html>`))
	}))
	defer server.Close()

	client := New(server.URL, "t")
	_, err := client.CreateOrder(context.Background(), &model.Order{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestFindCustomerByPhoneEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Page[model.Customer]{Data: []model.Customer{}})
	}))
	defer server.Close()

	client := New(server.URL, "t")
	_, err := client.FindCustomerByPhone(context.Background(), "11988887777")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCustomerRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/customers", r.URL.Path)

		var customer model.Customer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&customer))
		customer.ID = "64a1b2c3d4e5f60718293a4b"
		json.NewEncoder(w).Encode(customer)
	}))
	defer server.Close()

	client := New(server.URL, "t")
	created, err := client.CreateCustomer(context.Background(), &model.Customer{
		Name:  "Maria das Dores",
		Phone: "11988887777",
	})
	require.NoError(t, err)
	assert.Equal(t, "64a1b2c3d4e5f60718293a4b", created.ID)
	assert.Equal(t, "Maria das Dores", created.Name)
}
