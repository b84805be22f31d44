// Package distance consulta o colaborador externo que converte um endereço
// completo em distância (km) até o ponto de referência da loja.
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Measure devolve a distância em km para o endereço informado. Falha aqui
// nunca bloqueia o formulário: o chamador notifica e mantém distância 0.
func (c *Client) Measure(ctx context.Context, fullAddress string) (float64, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("serviço de distância não configurado")
	}

	q := url.Values{}
	q.Set("address", fullAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/distance?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("falha ao consultar serviço de distância: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("serviço de distância respondeu %d", resp.StatusCode)
	}

	var body struct {
		Distance float64 `json:"distance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("resposta inesperada do serviço de distância: %w", err)
	}
	return body.Distance, nil
}
