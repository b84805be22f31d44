// /internal/database/database.go
package database

import (
	"log"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/config"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB abre a conexão com o banco local de rascunhos e roda as
// migrações. Clientes, produtos e pedidos NÃO são migrados aqui: essas
// entidades pertencem à API remota; o banco local guarda apenas o estado
// dos formulários em andamento.
func ConnectDB() {
	var err error

	dsn := config.AppConfig.Database.URL
	if dsn == "" {
		log.Fatal("DATABASE_URL não configurada")
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Falha ao conectar ao banco de rascunhos: %v", err)
	}

	log.Println("Conexão com o banco de rascunhos estabelecida com sucesso.")

	if err := DB.AutoMigrate(&model.Draft{}, &model.DraftItem{}); err != nil {
		log.Fatalf("Falha ao executar migrações: %v", err)
	}
	log.Println("Migrações concluídas com sucesso.")
}
