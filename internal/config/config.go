package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config concentra toda a configuração do back-office. Os dados de negócio
// vivem na API remota; aqui só entram origem/credencial da API, os serviços
// colaboradores (CEP e distância) e o banco local de rascunhos.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	CEP      ServiceConfig
	Distance ServiceConfig
	Database DatabaseConfig
	Session  SessionConfig
	Drafts   DraftsConfig
}

type ServerConfig struct {
	Port       string
	CORSOrigin string
}

// APIConfig aponta para a API de negócio. O token é fornecido pelo
// colaborador externo de autenticação e apenas repassado como bearer.
type APIConfig struct {
	BaseURL string
	Token   string
}

type ServiceConfig struct {
	BaseURL string
}

type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
}

type DraftsConfig struct {
	// Rascunhos sem atualização há mais dias que isso são removidos na
	// subida do processo.
	MaxAgeDays int
}

var AppConfig *Config

// Load lê o .env (quando existir) e as variáveis de ambiente.
func Load() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("AVISO: .env não encontrado, usando só variáveis de ambiente: %v", err)
	}
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CEP_SERVICE_URL", "https://viacep.com.br/ws")
	viper.SetDefault("DRAFT_MAX_AGE_DAYS", 7)

	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("API_BASE_URL")
	viper.BindEnv("API_TOKEN")

	AppConfig = &Config{
		Server: ServerConfig{
			Port:       viper.GetString("SERVER_PORT"),
			CORSOrigin: viper.GetString("CORS_ORIGIN"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Token:   viper.GetString("API_TOKEN"),
		},
		CEP: ServiceConfig{
			BaseURL: viper.GetString("CEP_SERVICE_URL"),
		},
		Distance: ServiceConfig{
			BaseURL: viper.GetString("DISTANCE_SERVICE_URL"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET"),
		},
		Drafts: DraftsConfig{
			MaxAgeDays: viper.GetInt("DRAFT_MAX_AGE_DAYS"),
		},
	}

	if AppConfig.API.BaseURL == "" {
		log.Fatal("API_BASE_URL não configurada; o back-office não funciona sem a API de negócio")
	}

	log.Printf("Configuração carregada: porta=%s api=%s", AppConfig.Server.Port, AppConfig.API.BaseURL)
}
