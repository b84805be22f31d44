package draft

import (
	"context"
	"errors"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// ErrPhoneTooShort indica telefone com menos de 10 dígitos: a busca nem
// chega a ir à rede e o campo de cliente é limpo.
var ErrPhoneTooShort = errors.New("telefone incompleto para busca")

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Resolver busca clientes pelo telefone no diretório remoto.
type Resolver struct {
	API *apiclient.Client
}

// Resolve devolve no máximo um cliente para o telefone informado.
// Menos de 10 dígitos após a limpeza: ErrPhoneTooShort, sem chamada de
// rede. Sem resultado: apiclient.ErrNotFound, que a tela transforma no
// atalho de cadastro pré-preenchido com o telefone buscado.
func (r *Resolver) Resolve(ctx context.Context, rawPhone string) (*model.Customer, error) {
	digits := onlyDigits(rawPhone)
	if len(digits) < 10 {
		return nil, ErrPhoneTooShort
	}
	return r.API.FindCustomerByPhone(ctx, digits)
}

// ApplyCustomer grava o cliente resolvido no rascunho e avança a geração
// de busca; respostas de carregamentos de endereço disparados antes desta
// troca passam a ser descartadas. Troca para um cliente diferente derruba
// a lista e a seleção de endereço do anterior, senão a seleção antiga
// impediria a pré-seleção do novo padrão e iria parar no envio como um id
// que não pertence a ninguém. A coleção de itens não é tocada.
func ApplyCustomer(d *model.Draft, customer *model.Customer) int64 {
	if customer.ID != d.CustomerID {
		d.Addresses = nil
		d.AddressID = ""
	}
	d.CustomerID = customer.ID
	d.CustomerName = customer.Name
	d.CustomerPhone = customer.Phone
	d.LookupGen++
	return d.LookupGen
}

// ClearCustomer limpa o cliente selecionado (telefone curto ou não
// encontrado) junto com a lista de endereços dependente dele.
func ClearCustomer(d *model.Draft) int64 {
	d.CustomerID = ""
	d.CustomerName = ""
	d.CustomerPhone = ""
	d.Addresses = nil
	d.AddressID = ""
	d.LookupGen++
	return d.LookupGen
}

// ApplyAddresses aplica o resultado de um carregamento de endereços se a
// geração ainda for a corrente; resposta atrasada de uma busca abandonada
// é descartada. Seleção vazia é tratada como "ainda sem escolha" e recebe
// o endereço padrão; uma seleção explícita nunca é sobrescrita.
func ApplyAddresses(d *model.Draft, gen int64, addresses []model.Address) bool {
	if gen != d.LookupGen {
		return false
	}
	d.Addresses = addresses
	if d.AddressID == "" {
		if def, ok := model.DefaultAddress(addresses); ok {
			d.AddressID = def.ID
		}
	}
	return true
}
