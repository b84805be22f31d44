package draft

import (
	"math"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// DeliveryFee é a linha de taxa de entrega exibida no resumo. Hoje é um
// marcador fixo em zero mesmo com endereço de entrega selecionado; o
// cálculo real ainda não existe.
const DeliveryFee int64 = 0

// Subtotal calcula quantidade × preço unitário em centavos, usando a
// quantidade como exibida na tela (0,5 kg a preço P dá 0,5×P). A conversão
// ×1000 de peso/volume acontece só na montagem do envio, nunca aqui.
func Subtotal(item model.DraftItem) int64 {
	return int64(math.Round(item.Quantity * float64(item.Price)))
}

// Total soma os subtotais de todos os itens mais a taxa de entrega.
// Função pura do estado atual da coleção.
func Total(d *model.Draft) int64 {
	var total int64
	for _, item := range d.Items {
		total += Subtotal(item)
	}
	return total + DeliveryFee
}
