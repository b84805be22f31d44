package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

// CatalogHandler cobre as telas de consulta do catálogo fora do formulário
// de pedido. O catálogo é somente leitura para o back-office.
type CatalogHandler struct {
	API    *apiclient.Client
	Titles *view.TitleStore
}

// Products lista produtos paginados, com busca por nome.
func (h *CatalogHandler) Products(c *gin.Context) {
	h.Titles.Set("Produtos")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	result, err := h.API.ListProducts(c.Request.Context(), c.Query("name"), page, limit)
	if err != nil {
		log.Printf("Erro ao listar produtos: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao listar produtos."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Categories lista todas as categorias.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.API.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Erro ao listar categorias: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erro ao listar categorias."})
		return
	}
	c.JSON(http.StatusOK, categories)
}
