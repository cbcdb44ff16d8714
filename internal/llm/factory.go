package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/lovekey/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables suggestions and returns nil.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the application config into provider settings.
// The API key falls back to OPENAI_API_KEY for the openai provider.
func ConfigFromModel(cfg *model.Config) Config {
	c := Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		MaxTokens:  cfg.LLM.MaxTokens,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		NoProxy:    cfg.HTTP.NoProxy,
	}
	if c.APIKey == "" && strings.EqualFold(c.Provider, "openai") {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return c
}
