package model

// UnityType classifica a unidade de venda de um produto e governa o passo
// de quantidade no formulário e o fator de conversão no envio do pedido.
type UnityType string

const (
	// UnityTypeUnit vende por unidade inteira (quantidade em unidades).
	UnityTypeUnit UnityType = "UNITY"
	// UnityTypeWeight vende por peso (quantidade em kg na tela, gramas no envio).
	UnityTypeWeight UnityType = "WEIGHT"
	// UnityTypeVolume vende por volume (quantidade em litros na tela, ml no envio).
	UnityTypeVolume UnityType = "VOLUME"
)

// Fractional indica se a quantidade aceita valores quebrados (peso/volume).
func (u UnityType) Fractional() bool {
	return u == UnityTypeWeight || u == UnityTypeVolume
}

// QuantityStep devolve o incremento mínimo do campo de quantidade.
func (u UnityType) QuantityStep() float64 {
	if u.Fractional() {
		return 0.25
	}
	return 1
}

// MinQuantity devolve a menor quantidade aceita para o tipo de unidade.
func (u UnityType) MinQuantity() float64 {
	if u.Fractional() {
		return 0.25
	}
	return 1
}

// QuantityPresets devolve os atalhos de quantidade oferecidos na tela para
// produtos vendidos por peso ou volume. Para unidade inteira não há atalhos.
func (u UnityType) QuantityPresets() []float64 {
	if !u.Fractional() {
		return nil
	}
	return []float64{0.25, 0.5, 1.0, 1.5, 2.0}
}

// Product representa um produto do catálogo. Do ponto de vista do
// back-office o catálogo é somente leitura; preço em centavos.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Value      int64     `json:"value"`
	UnityType  UnityType `json:"unityType"`
	CategoryID string    `json:"categoryId,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
}

// Category representa uma categoria de produtos.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
