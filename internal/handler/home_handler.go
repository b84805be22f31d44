package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

// HomeHandler responde a raiz com o título corrente do cabeçalho e as
// mensagens flash pendentes da sessão do atendente.
type HomeHandler struct {
	Store  *sessions.CookieStore
	Titles *view.TitleStore
}

func (h *HomeHandler) ShowHome(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	flashesSuccess := session.Flashes("success")
	flashesError := session.Flashes("error")
	_ = session.Save(c.Request, c.Writer)

	c.JSON(http.StatusOK, gin.H{
		"app":            "backoffice-pedidos",
		"title":          h.Titles.Get(),
		"flashesSuccess": flashesSuccess,
		"flashesError":   flashesError,
	})
}
