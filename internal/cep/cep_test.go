package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "01001000", Normalize("01001-000"))
	assert.Equal(t, "01001000", Normalize(" 01.001-000 "))
	assert.Equal(t, "", Normalize("abc"))
}

func TestFormat(t *testing.T) {
	formatted, err := Format("01001000")
	require.NoError(t, err)
	assert.Equal(t, "01001-000", formatted)

	formatted, err = Format("01001-000")
	require.NoError(t, err)
	assert.Equal(t, "01001-000", formatted)

	for _, raw := range []string{"", "123", "123456789", "abcdefgh"} {
		_, err := Format(raw)
		assert.ErrorIs(t, err, ErrInvalidCEP, "entrada %q", raw)
	}
}

func TestLookupSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01001000/json/", r.URL.Path)
		w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Lookup(context.Background(), "01001-000")
	require.NoError(t, err)

	assert.Equal(t, "01001-000", result.CEP)
	assert.Equal(t, "Praça da Sé", result.Street)
	assert.Equal(t, "Sé", result.Neighborhood)
	assert.Equal(t, "São Paulo", result.City)
	assert.Equal(t, "SP", result.State)
}

func TestLookupUnknownCEP(t *testing.T) {
	// O serviço responde 200 com "erro" marcado quando o CEP não existe.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "99999-999")
	assert.ErrorIs(t, err, ErrInvalidCEP)
}

func TestLookupMalformedSkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidCEP)
	assert.False(t, called)
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "01001-000")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCEP)
}
