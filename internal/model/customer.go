package model

// Customer representa um cliente cadastrado na API remota.
// O ID é atribuído pelo servidor; fica vazio enquanto o cliente não é salvo.
type Customer struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Phone2    string    `json:"phone2,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

// Address representa um endereço de entrega de um cliente.
// No máximo um endereço por cliente pode ter IsDefault = true.
type Address struct {
	ID               string  `json:"id,omitempty"`
	CEP              string  `json:"cep"`
	Street           string  `json:"street"`
	Number           string  `json:"number"`
	Neighborhood     string  `json:"neighborhood"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	AditionalDetails string  `json:"aditionalDetails"`
	Distance         float64 `json:"distance"`
	IsDefault        bool    `json:"isDefault"`
	CustomerID       string  `json:"customerId,omitempty"`
}

// FullText monta o endereço completo em uma única linha, no formato usado
// pelo serviço de cálculo de distância.
func (a Address) FullText() string {
	s := a.Street + ", " + a.Number
	if a.Neighborhood != "" {
		s += ", " + a.Neighborhood
	}
	s += ", " + a.City + " - " + a.State
	if a.CEP != "" {
		s += ", " + a.CEP
	}
	return s
}

// SetDefaultAddress marca o endereço de índice i como padrão e desmarca
// todos os irmãos. A invariante (no máximo um padrão) é garantida aqui,
// antes do envio para a API.
func SetDefaultAddress(addresses []Address, i int) {
	for j := range addresses {
		addresses[j].IsDefault = j == i
	}
}

// DefaultAddress devolve o endereço padrão da lista, se houver.
func DefaultAddress(addresses []Address) (Address, bool) {
	for _, a := range addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}
