package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/catalog"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/draft"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

const (
	SessionName     = "backoffice-pedidos-session"
	draftSessionKey = "draft_id"
)

// DraftHandler agrupa os endpoints do formulário de composição de pedido.
// O rascunho vive no banco local; a sessão do atendente guarda só o id.
type DraftHandler struct {
	Store     *sessions.CookieStore
	Drafts    *draft.Store
	API       *apiclient.Client
	Catalogs  *catalog.Registry
	Submitter *draft.Submitter
	Resolver  *draft.Resolver
	Titles    *view.TitleStore
}

type itemView struct {
	model.DraftItem
	Subtotal int64     `json:"subtotal"`
	Step     float64   `json:"step"`
	Min      float64   `json:"min"`
	Presets  []float64 `json:"presets,omitempty"`
}

func draftView(d *model.Draft) gin.H {
	items := make([]itemView, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, itemView{
			DraftItem: item,
			Subtotal:  draft.Subtotal(item),
			Step:      item.UnityType.QuantityStep(),
			Min:       item.UnityType.MinQuantity(),
			Presets:   item.UnityType.QuantityPresets(),
		})
	}
	return gin.H{
		"draft":       d,
		"items":       items,
		"deliveryFee": draft.DeliveryFee,
		"total":       draft.Total(d),
	}
}

// currentDraft recupera o rascunho apontado pela sessão do atendente.
func (h *DraftHandler) currentDraft(c *gin.Context) (*model.Draft, bool) {
	session, _ := h.Store.Get(c.Request, SessionName)
	id, ok := session.Values[draftSessionKey].(string)
	if !ok || id == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Nenhum pedido em andamento. Abra um formulário primeiro."})
		return nil, false
	}

	d, err := h.Drafts.Get(id)
	if err != nil {
		if !errors.Is(err, draft.ErrDraftNotFound) {
			log.Printf("Erro ao carregar rascunho %s: %v", id, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Pedido em andamento não encontrado."})
		return nil, false
	}
	return d, true
}

// catalogFor devolve a foto do catálogo da sessão do formulário,
// recarregando-a se o processo reiniciou desde a abertura.
func (h *DraftHandler) catalogFor(c *gin.Context, draftID string) (*catalog.Cache, bool) {
	if cache, ok := h.Catalogs.Get(draftID); ok {
		return cache, true
	}
	cache, err := catalog.Load(c.Request.Context(), h.API)
	if err != nil {
		log.Printf("Erro ao carregar catálogo para o rascunho %s: %v", draftID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao carregar o catálogo de produtos."})
		return nil, false
	}
	h.Catalogs.Put(draftID, cache)
	return cache, true
}

func (h *DraftHandler) save(c *gin.Context, d *model.Draft) bool {
	if err := h.Drafts.Save(d); err != nil {
		log.Printf("Erro ao salvar rascunho %s: %v", d.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao salvar o pedido em andamento."})
		return false
	}
	return true
}

// Open abre um formulário de pedido: cria o rascunho (vazio, ou carregado
// de um pedido existente para edição), tira a foto do catálogo — uma vez
// por abertura de formulário — e amarra o rascunho à sessão.
func (h *DraftHandler) Open(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	// Corpo vazio é válido: pedido novo.
	_ = c.ShouldBindJSON(&req)

	var d *model.Draft
	if req.OrderID != "" {
		order, err := h.API.GetOrder(c.Request.Context(), req.OrderID)
		if err != nil {
			log.Printf("Erro ao carregar pedido %s para edição: %v", req.OrderID, err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao carregar o pedido para edição."})
			return
		}
		d = draft.LoadOrder(order)
		h.Titles.Set("Editar Pedido")
	} else {
		d = &model.Draft{Status: model.DraftIdle}
		h.Titles.Set("Novo Pedido")
	}

	if err := h.Drafts.Create(d); err != nil {
		log.Printf("Erro ao criar rascunho: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao abrir o formulário de pedido."})
		return
	}

	cache, err := catalog.Load(c.Request.Context(), h.API)
	if err != nil {
		log.Printf("Erro ao carregar catálogo: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao carregar o catálogo de produtos."})
		return
	}
	h.Catalogs.Put(d.ID, cache)

	session, _ := h.Store.Get(c.Request, SessionName)
	// Formulário anterior abandonado nesta sessão libera sua foto de
	// catálogo; o rascunho em si fica no banco até a limpeza da subida.
	if oldID, ok := session.Values[draftSessionKey].(string); ok && oldID != "" && oldID != d.ID {
		h.Catalogs.Drop(oldID)
	}
	session.Values[draftSessionKey] = d.ID
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("AVISO: erro ao salvar sessão em Open: %v", err)
	}

	c.JSON(http.StatusOK, draftView(d))
}

// Current devolve o estado corrente do formulário com totais derivados.
func (h *DraftHandler) Current(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// BrowseCatalog lista a foto do catálogo do formulário, opcionalmente
// filtrada por categoria, com a marca de subproduto por item.
func (h *DraftHandler) BrowseCatalog(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}
	cache, ok := h.catalogFor(c, d.ID)
	if !ok {
		return
	}

	products := cache.Products()
	if categoryID := c.Query("categoryId"); categoryID != "" {
		products = cache.ByCategory(categoryID)
	}

	type productView struct {
		model.Product
		ShowsSubProducts bool `json:"showsSubProducts"`
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, productView{Product: p, ShowsSubProducts: cache.ShowsSubProducts(p)})
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   out,
		"categories": cache.Categories(),
	})
}

// AppendItem acrescenta uma linha em branco no fim da coleção.
func (h *DraftHandler) AppendItem(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}
	draft.AppendBlank(d)
	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// AddFromCatalog acrescenta uma linha a partir da navegação do catálogo,
// com quantidade e subprodutos escolhidos. Sempre acrescenta uma linha
// nova, nunca soma na existente.
func (h *DraftHandler) AddFromCatalog(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	var req struct {
		ProductID     string   `json:"productId" binding:"required"`
		Quantity      float64  `json:"quantity"`
		SubProductIDs []string `json:"subProductIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Informe o produto a adicionar."})
		return
	}

	cache, ok := h.catalogFor(c, d.ID)
	if !ok {
		return
	}
	product, found := cache.FindByID(req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produto não encontrado no catálogo."})
		return
	}

	draft.AddFromCatalog(d, product, req.Quantity, req.SubProductIDs, cache)
	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// UpdateItem atualiza a linha indicada: troca de produto e/ou quantidade.
// A quantidade chega como texto e entrada não numérica vira 0.
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Índice de item inválido."})
		return
	}

	var req struct {
		ProductID *string `json:"productId"`
		Quantity  *string `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corpo da requisição inválido."})
		return
	}

	if req.ProductID != nil {
		cache, ok := h.catalogFor(c, d.ID)
		if !ok {
			return
		}
		if err := draft.SelectProduct(d, index, *req.ProductID, cache); err != nil {
			h.reportEditorError(c, err)
			return
		}
	}
	if req.Quantity != nil {
		if err := draft.SetQuantity(d, index, *req.Quantity); err != nil {
			h.reportEditorError(c, err)
			return
		}
	}

	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// RemoveItem apaga a linha indicada; os índices posteriores descem um.
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Índice de item inválido."})
		return
	}

	if err := draft.Remove(d, index); err != nil {
		h.reportEditorError(c, err)
		return
	}
	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// reportEditorError separa o erro interno (índice fora da coleção, que não
// deveria acontecer por interação normal e não vira mensagem para o
// usuário) do erro de seleção comum.
func (h *DraftHandler) reportEditorError(c *gin.Context, err error) {
	if errors.Is(err, draft.ErrIndexOutOfRange) {
		log.Printf("Erro interno no editor de itens: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
}

// SetPhone resolve o cliente pelo telefone digitado e, quando encontra,
// carrega os endereços dele. Menos de 10 dígitos: limpa o cliente sem ir à
// rede. Não encontrado: limpa e devolve o atalho de cadastro pré-preenchido.
func (h *DraftHandler) SetPhone(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corpo da requisição inválido."})
		return
	}

	customer, err := h.Resolver.Resolve(c.Request.Context(), req.Phone)
	switch {
	case errors.Is(err, draft.ErrPhoneTooShort):
		draft.ClearCustomer(d)
		if !h.save(c, d) {
			return
		}
		// Telefone incompleto também limpa qualquer erro de busca anterior.
		c.JSON(http.StatusOK, gin.H{"success": true, "found": false})
		return

	case errors.Is(err, apiclient.ErrNotFound):
		draft.ClearCustomer(d)
		if !h.save(c, d) {
			return
		}
		query := url.Values{}
		query.Set("phone", req.Phone)
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"found":      false,
			"fieldError": "Cliente não encontrado.",
			"createLink": "/clientes/novo?" + query.Encode(),
		})
		return

	case err != nil:
		// Falha de transporte: mesma consequência do não encontrado para o
		// formulário, mas com aviso distinto.
		log.Printf("Erro ao buscar cliente por telefone: %v", err)
		draft.ClearCustomer(d)
		if !h.save(c, d) {
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao buscar cliente. Tente novamente."})
		return
	}

	gen := draft.ApplyCustomer(d, customer)

	// Carrega os endereços do cliente resolvido. Falha transitória não
	// derruba a lista anterior nem é retentada; resposta de uma busca já
	// superada é descartada pela geração.
	full, loadErr := h.API.GetCustomer(c.Request.Context(), customer.ID)
	if loadErr != nil {
		log.Printf("Erro ao carregar endereços do cliente %s: %v", customer.ID, loadErr)
	} else if !draft.ApplyAddresses(d, gen, full.Addresses) {
		log.Printf("Carregamento de endereços descartado: busca %d superada no rascunho %s", gen, d.ID)
	}

	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// SetAddress grava a seleção de endereço; vazio significa retirada na loja.
func (h *DraftHandler) SetAddress(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	var req struct {
		AddressID string `json:"addressId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corpo da requisição inválido."})
		return
	}

	if req.AddressID != "" {
		found := false
		for _, a := range d.Addresses {
			if a.ID == req.AddressID {
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Endereço não pertence ao cliente selecionado."})
			return
		}
	}

	d.AddressID = req.AddressID
	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// SetDetails grava os demais campos do formulário (data de retirada, local
// do pedido, observações, atendente).
func (h *DraftHandler) SetDetails(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	var req struct {
		PickupDate   *model.FlexTime `json:"pickupDate"`
		OrderLocal   *string         `json:"orderLocal"`
		Observations *string         `json:"observations"`
		EmployeeID   *string         `json:"employeeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data de retirada em formato inválido."})
		return
	}

	if req.PickupDate != nil {
		d.PickupDate = req.PickupDate.Time
	}
	if req.OrderLocal != nil {
		d.OrderLocal = *req.OrderLocal
	}
	if req.Observations != nil {
		d.Observations = *req.Observations
	}
	if req.EmployeeID != nil {
		d.EmployeeID = *req.EmployeeID
	}

	if !h.save(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// Submit valida e envia o rascunho. Sucesso desamarra o rascunho da sessão
// e devolve o id persistido para a tela de detalhe do pedido.
func (h *DraftHandler) Submit(c *gin.Context) {
	d, ok := h.currentDraft(c)
	if !ok {
		return
	}

	persisted, err := h.Submitter.Submit(c.Request.Context(), d)
	if err != nil {
		var verr *draft.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "fields": verr.Fields})
		case errors.Is(err, draft.ErrSubmitInFlight):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Este pedido já está sendo enviado."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao enviar o pedido. Tente novamente."})
		}
		return
	}

	session, _ := h.Store.Get(c.Request, SessionName)
	delete(session.Values, draftSessionKey)
	session.AddFlash("Pedido salvo com sucesso!", "success")
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("AVISO: erro ao salvar sessão em Submit: %v", err)
	}

	h.Catalogs.Drop(d.ID)
	if err := h.Drafts.Delete(d.ID); err != nil {
		log.Printf("AVISO: rascunho %s enviado mas não removido: %v", d.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Pedido salvo com sucesso!",
		"orderId":  persisted.ID,
		"number":   persisted.Number,
		"redirect": "/pedidos/" + persisted.ID,
	})
}
