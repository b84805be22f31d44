package model

import (
	"time"
)

// DraftStatus acompanha o ciclo de envio de um rascunho de pedido.
type DraftStatus string

const (
	DraftIdle       DraftStatus = "idle"
	DraftValidating DraftStatus = "validating"
	DraftSubmitting DraftStatus = "submitting"
	DraftSuccess    DraftStatus = "success"
	DraftFailed     DraftStatus = "failed"
)

// Draft é o estado do formulário de composição de pedido, persistido
// localmente para que um atendente possa retomar um pedido interrompido.
// A API remota só toma conhecimento do pedido no envio.
type Draft struct {
	ID     string      `gorm:"primaryKey;size:36" json:"id"`
	Status DraftStatus `gorm:"size:20;not null;default:'idle'" json:"status"`

	// Pedido já persistido sendo editado; vazio para pedido novo.
	OrderID string `gorm:"size:40" json:"orderId,omitempty"`

	CustomerID    string `gorm:"size:40" json:"customerId"`
	CustomerName  string `gorm:"size:120" json:"customerName"`
	CustomerPhone string `gorm:"size:20" json:"customerPhone"`

	// Seleção de endereço; vazio significa retirada na loja.
	AddressID string `gorm:"size:40" json:"addressId"`

	// Endereços do cliente carregados da API, espelhados para a tela.
	Addresses []Address `gorm:"serializer:json" json:"addresses"`

	// LookupGen é incrementado a cada troca de cliente; respostas de
	// carregamento de endereços com geração antiga são descartadas.
	LookupGen int64 `gorm:"not null;default:0" json:"-"`

	PickupDate   time.Time `json:"pickupDate"`
	OrderLocal   string    `gorm:"size:120" json:"orderLocal"`
	Observations string    `gorm:"type:text" json:"observations"`
	EmployeeID   string    `gorm:"size:40" json:"employeeId"`

	Items []DraftItem `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DraftItem é um item do rascunho na representação da tela: quantidade
// fracionária para peso/volume e preço unitário em centavos, copiado do
// catálogo no momento da seleção (mudanças de preço no catálogo não afetam
// um carrinho aberto).
type DraftItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	DraftID  string `gorm:"size:36;index;not null" json:"-"`
	Position int    `gorm:"not null" json:"position"`

	ProductID   string       `gorm:"size:40" json:"productId"`
	Name        string       `gorm:"size:120" json:"name"`
	UnityType   UnityType    `gorm:"size:10;not null;default:'UNITY'" json:"unityType"`
	Quantity    float64      `gorm:"not null;default:1" json:"quantity"`
	Price       int64        `gorm:"not null;default:0" json:"price"`
	SubProducts []SubProduct `gorm:"serializer:json" json:"subProducts,omitempty"`
}
