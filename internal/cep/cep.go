// Package cep normaliza códigos postais e consulta o colaborador externo
// de CEP para preencher endereço a partir do código.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidCEP cobre tanto CEP com formato errado quanto CEP que o
// serviço não conhece; nos dois casos o formulário mostra erro no campo
// sem abortar o resto do preenchimento.
var ErrInvalidCEP = errors.New("CEP inválido")

// Normalize remove tudo que não for dígito.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format devolve o CEP no formato "NNNNN-NNN".
func Format(s string) (string, error) {
	digits := Normalize(s)
	if len(digits) != 8 {
		return "", ErrInvalidCEP
	}
	return digits[:5] + "-" + digits[5:], nil
}

// Result é o endereço resolvido a partir de um CEP.
type Result struct {
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
}

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

// Lookup consulta o serviço de CEP. Código malformado ou desconhecido
// resulta em ErrInvalidCEP; falha de transporte é devolvida como está.
func (c *Client) Lookup(ctx context.Context, rawCEP string) (*Result, error) {
	formatted, err := Format(rawCEP)
	if err != nil {
		return nil, err
	}
	digits := Normalize(formatted)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+digits+"/json/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha ao consultar serviço de CEP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCEP
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serviço de CEP respondeu %d", resp.StatusCode)
	}

	var body struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		Erro         bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("resposta inesperada do serviço de CEP: %w", err)
	}
	if body.Erro {
		return nil, ErrInvalidCEP
	}

	return &Result{
		CEP:          formatted,
		Street:       body.Street,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, nil
}
