package draft

import (
	"math"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// Fator de conversão entre a quantidade da tela (kg/litros) e a do
// transporte (gramas/mililitros) para produtos por peso ou volume.
const wireFactor = 1000

// WireQuantity converte a quantidade da tela para a representação inteira
// do transporte. Unidade inteira não sofre conversão.
func WireQuantity(u model.UnityType, uiQty float64) int64 {
	if u.Fractional() {
		return int64(math.Round(uiQty * wireFactor))
	}
	return int64(math.Round(uiQty))
}

// UIQuantity desfaz a conversão ao carregar um pedido persistido para edição.
func UIQuantity(u model.UnityType, wireQty int64) float64 {
	if u.Fractional() {
		return float64(wireQty) / wireFactor
	}
	return float64(wireQty)
}

// BuildOrder monta o pedido no formato da API a partir do rascunho:
// copia os escalares, converte quantidades de peso/volume e anula o
// endereço quando nenhum foi escolhido (retirada na loja).
func BuildOrder(d *model.Draft) *model.Order {
	order := &model.Order{
		ID:           d.OrderID,
		PickupDate:   model.FlexTime{Time: d.PickupDate},
		EmployeeID:   d.EmployeeID,
		OrderLocal:   d.OrderLocal,
		Observations: d.Observations,
		Products:     make([]model.OrderItem, 0, len(d.Items)),
	}

	if d.CustomerID != "" {
		order.Customer = &model.Customer{
			ID:    d.CustomerID,
			Name:  d.CustomerName,
			Phone: d.CustomerPhone,
		}
	}

	if d.AddressID != "" {
		for i := range d.Addresses {
			if d.Addresses[i].ID == d.AddressID {
				addr := d.Addresses[i]
				order.Address = &addr
				break
			}
		}
	}

	for _, item := range d.Items {
		order.Products = append(order.Products, model.OrderItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			UnityType:   item.UnityType,
			Quantity:    WireQuantity(item.UnityType, item.Quantity),
			Price:       item.Price,
			SubProducts: item.SubProducts,
		})
	}

	return order
}

// LoadOrder reconstrói um rascunho a partir de um pedido persistido, para
// edição: quantidades de peso/volume voltam à representação da tela.
func LoadOrder(order *model.Order) *model.Draft {
	d := &model.Draft{
		Status:       model.DraftIdle,
		OrderID:      order.ID,
		PickupDate:   order.PickupDate.Time,
		EmployeeID:   order.EmployeeID,
		OrderLocal:   order.OrderLocal,
		Observations: order.Observations,
	}

	if order.Customer != nil {
		d.CustomerID = order.Customer.ID
		d.CustomerName = order.Customer.Name
		d.CustomerPhone = order.Customer.Phone
	}
	if order.Address != nil {
		d.AddressID = order.Address.ID
		d.Addresses = []model.Address{*order.Address}
	}

	for i, item := range order.Products {
		d.Items = append(d.Items, model.DraftItem{
			Position:    i,
			ProductID:   item.ProductID,
			Name:        item.Name,
			UnityType:   item.UnityType,
			Quantity:    UIQuantity(item.UnityType, item.Quantity),
			Price:       item.Price,
			SubProducts: item.SubProducts,
		})
	}

	return d
}
