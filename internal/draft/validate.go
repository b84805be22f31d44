package draft

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

var validate = validator.New()

// ValidationError carrega as mensagens por campo de um envio barrado na
// validação. Nenhuma chamada de rede acontece quando ele é devolvido.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "formulário inválido: " + strings.Join(keys, ", ")
}

// Validate confere o formulário inteiro antes do envio. A variante
// canônica do formulário exige o local do pedido; ver DESIGN.md.
func Validate(d *model.Draft) *ValidationError {
	fields := make(map[string]string)

	// O id de cliente vem do diretório remoto no formato de identificador
	// hexadecimal de 24 caracteres.
	if err := validate.Var(d.CustomerID, "required,len=24,hexadecimal"); err != nil {
		fields["customerId"] = "selecione um cliente válido pelo telefone"
	}

	if d.PickupDate.IsZero() {
		fields["pickupDate"] = "informe a data de retirada"
	}

	if strings.TrimSpace(d.OrderLocal) == "" {
		fields["orderLocal"] = "informe o local do pedido"
	}

	if len(d.Items) == 0 {
		fields["products"] = "adicione ao menos um item ao pedido"
	}
	for i, item := range d.Items {
		if item.ProductID == "" {
			fields[fmt.Sprintf("products.%d.productId", i)] = "selecione um produto"
		}
		// NaN falha em qualquer comparação, então a checagem de finitude
		// precisa vir explícita; não pode chegar ao transporte.
		if item.Quantity <= 0 || math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
			fields[fmt.Sprintf("products.%d.quantity", i)] = "quantidade deve ser maior que zero"
		}
		if item.Price <= 0 {
			fields[fmt.Sprintf("products.%d.price", i)] = "item sem preço; selecione o produto novamente"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
