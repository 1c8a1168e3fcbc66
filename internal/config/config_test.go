package config

import (
	"testing"

	"aura-ops-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENT_ID", "id")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("AURA_AUTH_URL", "https://api.example.com/oauth/token")
	t.Setenv("API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("NEO4J_URI", "neo4j+s://example.databases.neo4j.io")
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "pw")
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "my-project")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "DASHBOARD_NOTICES", cfg.App.NoticeTopic)
	assert.Equal(t, 30, cfg.App.NoticeTTLSeconds)
	assert.Equal(t, 15, cfg.Aura.TimeoutSeconds)
	assert.Equal(t, "vertex", cfg.Ai.EmbeddingProvider)
	assert.Equal(t, "textembedding-gecko@003", cfg.Ai.VertexModel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("NOTICE_TTL_SECONDS", "60")
	t.Setenv("EMBEDDING_PROVIDER", "ollama")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 60, cfg.App.NoticeTTLSeconds)
	assert.Equal(t, "ollama", cfg.Ai.EmbeddingProvider)
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("NOTICE_TTL_SECONDS", "not-a-number")
	assert.Equal(t, 30, getEnvAsInt("NOTICE_TTL_SECONDS", 30))
}

func TestValidateOK(t *testing.T) {
	setRequiredEnv(t)
	assert.NoError(t, Load().Validate())
}

func TestValidateReportsMissingVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLIENT_SECRET", "")
	t.Setenv("NEO4J_URI", "")

	err := Load().Validate()

	var configErr *apperror.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Missing, "CLIENT_SECRET")
	assert.Contains(t, configErr.Missing, "NEO4J_URI")
	assert.NotContains(t, configErr.Missing, "CLIENT_ID")
}

func TestValidateVertexProjectRequiredOnlyForVertex(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "")

	err := Load().Validate()
	var configErr *apperror.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Missing, "GOOGLE_CLOUD_PROJECT_ID")

	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	assert.NoError(t, Load().Validate())
}
