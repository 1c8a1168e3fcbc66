package config

import (
	"log"
	"os"
	"strconv"

	"aura-ops-be/internal/apperror"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Aura    AuraConfig
	Graph   GraphConfig
	Ai      AIConfig
	Tenants TenantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NoticeTopic        string
	NoticeTTLSeconds   int
}

type AuraConfig struct {
	ClientID       string
	ClientSecret   string
	TokenURL       string
	APIBaseURL     string
	TimeoutSeconds int
}

type GraphConfig struct {
	URI      string
	Username string
	Password string
}

type AIConfig struct {
	EmbeddingProvider string // "vertex" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	VertexProjectID   string
	VertexLocation    string
	VertexModel       string
}

type TenantConfig struct {
	CatalogPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NoticeTopic:        getEnv("NOTICE_TOPIC_NAME", "DASHBOARD_NOTICES"),
			NoticeTTLSeconds:   getEnvAsInt("NOTICE_TTL_SECONDS", 30),
		},
		Aura: AuraConfig{
			ClientID:       getEnv("CLIENT_ID", ""),
			ClientSecret:   getEnv("CLIENT_SECRET", ""),
			TokenURL:       getEnv("AURA_AUTH_URL", ""),
			APIBaseURL:     getEnv("API_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("AURA_TIMEOUT_SECONDS", 15),
		},
		Graph: GraphConfig{
			URI:      getEnv("NEO4J_URI", ""),
			Username: getEnv("NEO4J_USER", ""),
			Password: getEnv("NEO4J_PASSWORD", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "vertex"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			VertexProjectID:   getEnv("GOOGLE_CLOUD_PROJECT_ID", ""),
			VertexLocation:    getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
			VertexModel:       getEnv("VERTEX_EMBEDDING_MODEL", "textembedding-gecko@003"),
		},
		Tenants: TenantConfig{
			CatalogPath: getEnv("TENANT_CATALOG_PATH", ""),
		},
	}
}

// Validate checks the variables the process cannot run without. A missing
// value here is a startup failure, never a runtime-recoverable one.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"CLIENT_ID", c.Aura.ClientID},
		{"CLIENT_SECRET", c.Aura.ClientSecret},
		{"AURA_AUTH_URL", c.Aura.TokenURL},
		{"API_BASE_URL", c.Aura.APIBaseURL},
		{"NEO4J_URI", c.Graph.URI},
		{"NEO4J_USER", c.Graph.Username},
		{"NEO4J_PASSWORD", c.Graph.Password},
	}
	if c.Ai.EmbeddingProvider == "vertex" {
		required = append(required, struct {
			key   string
			value string
		}{"GOOGLE_CLOUD_PROJECT_ID", c.Ai.VertexProjectID})
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return &apperror.ConfigurationError{Missing: missing}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
