package model

import (
	"fmt"
	"strings"
	"time"
)

// FlexTime aceita tanto datas em string simples quanto datas completas já
// serializadas pela API (RFC3339, "AAAA-MM-DD" ou "AAAA-MM-DD HH:MM:SS").
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON tenta os formatos conhecidos em ordem; null ou string vazia
// resultam em tempo zero, não em erro.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("data em formato não reconhecido: %q", s)
}

// MarshalJSON serializa sempre em RFC3339; tempo zero vira null.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Format(time.RFC3339) + `"`), nil
}

// SubProduct é uma referência desnormalizada a um produto auxiliar
// (ex.: molho escolhido para uma massa) dentro de um item do pedido.
type SubProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

// OrderItem é um item do pedido no formato de transporte da API.
// Nome, tipo de unidade e preço são cópias desnormalizadas do catálogo no
// momento da seleção; a quantidade de produtos por peso/volume já vai
// convertida para a representação inteira (gramas/mililitros).
type OrderItem struct {
	ProductID   string       `json:"productId"`
	Name        string       `json:"name"`
	UnityType   UnityType    `json:"unityType"`
	Quantity    int64        `json:"quantity"`
	Price       int64        `json:"price"`
	SubProducts []SubProduct `json:"subProducts,omitempty"`
}

// Order representa um pedido como trafegado pela API remota.
// Address nulo significa retirada na loja.
type Order struct {
	ID           string      `json:"id,omitempty"`
	Number       int64       `json:"number,omitempty"`
	PickupDate   FlexTime    `json:"pickupDate"`
	CreatedAt    FlexTime    `json:"createdAt,omitempty"`
	UpdatedAt    FlexTime    `json:"updatedAt,omitempty"`
	Customer     *Customer   `json:"customer,omitempty"`
	Address      *Address    `json:"address,omitempty"`
	EmployeeID   string      `json:"employeeId,omitempty"`
	OrderLocal   string      `json:"orderLocal"`
	Observations string      `json:"observations"`
	IsPickedUp   bool        `json:"isPickedUp"`
	Products     []OrderItem `json:"products"`
}
