package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/cep"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/distance"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

// CustomerHandler agrupa os formulários de cliente e endereço.
//
// A lista de endereços do formulário é um rascunho local: remover um
// endereço na tela só tira da lista em memória; a persistência acontece em
// bloco no próximo salvamento do cliente (POST/PUT), nunca por chamada de
// exclusão avulsa.
type CustomerHandler struct {
	API      *apiclient.Client
	CEP      *cep.Client
	Distance *distance.Client
	Titles   *view.TitleStore
}

type addressRequest struct {
	ID               string  `json:"id"`
	CEP              string  `json:"cep" binding:"required"`
	Street           string  `json:"street" binding:"required"`
	Number           string  `json:"number" binding:"required"`
	Neighborhood     string  `json:"neighborhood" binding:"required"`
	City             string  `json:"city" binding:"required"`
	State            string  `json:"state" binding:"required,len=2,uppercase"`
	AditionalDetails string  `json:"aditionalDetails"`
	Distance         float64 `json:"distance"`
	IsDefault        bool    `json:"isDefault"`
}

type customerRequest struct {
	Name      string           `json:"name" binding:"required,min=5"`
	Email     string           `json:"email" binding:"omitempty,email"`
	Phone     string           `json:"phone" binding:"required"`
	Phone2    string           `json:"phone2"`
	Addresses []addressRequest `json:"addresses" binding:"dive"`
}

func phoneDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// buildCustomer valida a forma dos campos, normaliza CEPs e telefones e
// garante a invariante de endereço padrão único antes do envio.
func (h *CustomerHandler) buildCustomer(c *gin.Context, req *customerRequest) (*model.Customer, bool) {
	phone := phoneDigits(req.Phone)
	if len(phone) < 10 || len(phone) > 11 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "fields": gin.H{"phone": "telefone deve ter 10 ou 11 dígitos"}})
		return nil, false
	}
	phone2 := phoneDigits(req.Phone2)

	customer := &model.Customer{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  phone,
		Phone2: phone2,
	}

	defaultIndex := -1
	for i, a := range req.Addresses {
		formatted, err := cep.Format(a.CEP)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "fields": gin.H{"addresses." + strconv.Itoa(i) + ".cep": "CEP inválido"}})
			return nil, false
		}
		customer.Addresses = append(customer.Addresses, model.Address{
			ID:               a.ID,
			CEP:              formatted,
			Street:           a.Street,
			Number:           a.Number,
			Neighborhood:     a.Neighborhood,
			City:             a.City,
			State:            a.State,
			AditionalDetails: a.AditionalDetails,
			Distance:         a.Distance,
			IsDefault:        a.IsDefault,
		})
		if a.IsDefault && defaultIndex == -1 {
			defaultIndex = i
		}
	}

	// No máximo um endereço padrão: marcar um desmarca todos os irmãos
	// aqui, antes de qualquer requisição.
	if defaultIndex >= 0 {
		model.SetDefaultAddress(customer.Addresses, defaultIndex)
	}

	// Distância ausente é computada de forma preguiçosa a partir do
	// endereço completo; falha aqui não bloqueia o salvamento.
	for i := range customer.Addresses {
		if customer.Addresses[i].Distance != 0 {
			continue
		}
		km, err := h.Distance.Measure(c.Request.Context(), customer.Addresses[i].FullText())
		if err != nil {
			log.Printf("AVISO: distância não calculada para %q: %v", customer.Addresses[i].FullText(), err)
			continue
		}
		customer.Addresses[i].Distance = km
	}

	return customer, true
}

// Create cadastra um cliente novo. Antes do envio faz a pré-checagem de
// telefone duplicado — melhor esforço; a garantia real é do servidor.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Preencha os campos obrigatórios do cliente.", "detail": err.Error()})
		return
	}

	customer, ok := h.buildCustomer(c, &req)
	if !ok {
		return
	}

	existing, err := h.API.FindCustomerByPhone(c.Request.Context(), customer.Phone)
	if err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "fields": gin.H{"phone": "já existe um cliente com este telefone"}})
		return
	}
	if err != nil && !errors.Is(err, apiclient.ErrNotFound) {
		log.Printf("AVISO: pré-checagem de telefone falhou, seguindo para o servidor decidir: %v", err)
	}

	created, err := h.API.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		log.Printf("Erro ao criar cliente: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao salvar o cliente. Tente novamente."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cliente cadastrado com sucesso!", "customer": created})
}

// Update regrava um cliente existente, endereços inclusos (em bloco).
func (h *CustomerHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Preencha os campos obrigatórios do cliente.", "detail": err.Error()})
		return
	}

	customer, ok := h.buildCustomer(c, &req)
	if !ok {
		return
	}
	customer.ID = id
	for i := range customer.Addresses {
		customer.Addresses[i].CustomerID = id
	}

	updated, err := h.API.UpdateCustomer(c.Request.Context(), customer)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cliente não encontrado."})
			return
		}
		log.Printf("Erro ao atualizar cliente %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao salvar o cliente. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cliente atualizado com sucesso!", "customer": updated})
}

// Get devolve o cliente com endereços para a tela de edição.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.API.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cliente não encontrado."})
			return
		}
		log.Printf("Erro ao buscar cliente: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao buscar o cliente."})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// List devolve a listagem paginada de clientes para o back-office.
func (h *CustomerHandler) List(c *gin.Context) {
	h.Titles.Set("Clientes")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	result, err := h.API.ListCustomers(c.Request.Context(), c.Query("name"), page, limit)
	if err != nil {
		log.Printf("Erro ao listar clientes: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao listar clientes."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// LookupCEP resolve um CEP no colaborador externo para preencher rua,
// bairro, cidade e estado. CEP malformado ou desconhecido vira erro de
// campo, sem abortar o resto do formulário.
func (h *CustomerHandler) LookupCEP(c *gin.Context) {
	result, err := h.CEP.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		if errors.Is(err, cep.ErrInvalidCEP) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "validated": false, "fieldError": "CEP inválido."})
			return
		}
		log.Printf("Erro ao consultar CEP: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "validated": false, "error": "Erro ao consultar o CEP. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"validated":    true,
		"cep":          result.CEP,
		"street":       result.Street,
		"neighborhood": result.Neighborhood,
		"city":         result.City,
		"state":        result.State,
	})
}
