// /cmd/web/main.go
package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/catalog"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/cep"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/config"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/database"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/distance"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/draft"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/handler"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("AVISO: arquivo .env não encontrado, seguindo com o ambiente.")
	}

	config.Load()
	database.ConnectDB()

	maxAge := time.Duration(config.AppConfig.Drafts.MaxAgeDays) * 24 * time.Hour
	database.PurgeAbandonedDrafts(database.DB, maxAge)
	database.RecoverInterruptedSubmissions(database.DB)

	store := sessions.NewCookieStore([]byte(config.AppConfig.Session.Secret))

	api := apiclient.New(config.AppConfig.API.BaseURL, config.AppConfig.API.Token)
	drafts := draft.NewStore(database.DB)
	titles := view.NewTitleStore("Início")

	draftHandler := &handler.DraftHandler{
		Store:     store,
		Drafts:    drafts,
		API:       api,
		Catalogs:  catalog.NewRegistry(),
		Submitter: &draft.Submitter{API: api, Drafts: drafts},
		Resolver:  &draft.Resolver{API: api},
		Titles:    titles,
	}
	customerHandler := &handler.CustomerHandler{
		API:      api,
		CEP:      cep.NewClient(config.AppConfig.CEP.BaseURL),
		Distance: distance.NewClient(config.AppConfig.Distance.BaseURL),
		Titles:   titles,
	}
	orderHandler := &handler.OrderHandler{API: api, Titles: titles}
	catalogHandler := &handler.CatalogHandler{API: api, Titles: titles}
	homeHandler := &handler.HomeHandler{Store: store, Titles: titles}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origin := config.AppConfig.Server.CORSOrigin; origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	router.GET("/", homeHandler.ShowHome)

	router.GET("/clientes", customerHandler.List)
	router.POST("/clientes", customerHandler.Create)
	router.GET("/clientes/:id", customerHandler.Get)
	router.PUT("/clientes/:id", customerHandler.Update)
	router.GET("/cep/:cep", customerHandler.LookupCEP)

	router.GET("/produtos", catalogHandler.Products)
	router.GET("/categorias", catalogHandler.Categories)

	router.GET("/pedidos", orderHandler.List)
	router.GET("/pedidos/:id", orderHandler.Get)
	router.PUT("/pedidos/:id/retirada", orderHandler.MarkPickedUp)

	rascunho := router.Group("/rascunho")
	{
		rascunho.POST("", draftHandler.Open)
		rascunho.GET("", draftHandler.Current)
		rascunho.GET("/catalogo", draftHandler.BrowseCatalog)
		rascunho.POST("/itens", draftHandler.AppendItem)
		rascunho.POST("/itens/catalogo", draftHandler.AddFromCatalog)
		rascunho.PUT("/itens/:index", draftHandler.UpdateItem)
		rascunho.DELETE("/itens/:index", draftHandler.RemoveItem)
		rascunho.PUT("/telefone", draftHandler.SetPhone)
		rascunho.PUT("/endereco", draftHandler.SetAddress)
		rascunho.PUT("/dados", draftHandler.SetDetails)
		rascunho.POST("/enviar", draftHandler.Submit)
	}

	port := config.AppConfig.Server.Port
	log.Printf("Servidor rodando na porta %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Falha ao subir o servidor: %v", err)
	}
}
