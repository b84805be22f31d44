package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/draft"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

// OrderHandler cobre as telas de listagem e detalhe de pedidos já
// persistidos na API.
type OrderHandler struct {
	API    *apiclient.Client
	Titles *view.TitleStore
}

// List devolve a listagem paginada de pedidos.
func (h *OrderHandler) List(c *gin.Context) {
	h.Titles.Set("Pedidos")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	result, err := h.API.ListOrders(c.Request.Context(), page, limit)
	if err != nil {
		log.Printf("Erro ao listar pedidos: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao listar pedidos."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get devolve o detalhe do pedido com as quantidades reconvertidas para a
// representação da tela (gramas/mililitros de volta para kg/litros).
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.API.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Pedido não encontrado."})
			return
		}
		log.Printf("Erro ao buscar pedido: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao buscar o pedido."})
		return
	}

	type itemDetail struct {
		model.OrderItem
		DisplayQuantity float64 `json:"displayQuantity"`
		Subtotal        int64   `json:"subtotal"`
	}
	items := make([]itemDetail, 0, len(order.Products))
	var total int64
	for _, item := range order.Products {
		uiQty := draft.UIQuantity(item.UnityType, item.Quantity)
		sub := draft.Subtotal(model.DraftItem{Quantity: uiQty, Price: item.Price})
		total += sub
		items = append(items, itemDetail{OrderItem: item, DisplayQuantity: uiQty, Subtotal: sub})
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
		"total": total,
	})
}

// MarkPickedUp registra a retirada do pedido pelo cliente.
func (h *OrderHandler) MarkPickedUp(c *gin.Context) {
	order, err := h.API.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Pedido não encontrado."})
			return
		}
		log.Printf("Erro ao buscar pedido para retirada: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao buscar o pedido."})
		return
	}

	order.IsPickedUp = true
	updated, err := h.API.UpdateOrder(c.Request.Context(), order)
	if err != nil {
		log.Printf("Erro ao registrar retirada do pedido %s: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao registrar a retirada."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Retirada registrada.", "order": updated})
}
