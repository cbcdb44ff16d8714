package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lovekey/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Reframe proposes a unity-oriented rewording of the request text
	Reframe(ctx context.Context, req ReframeRequest) (*ReframeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReframeRequest contains the input for a rewording
type ReframeRequest struct {
	// Text is the analyzed content
	Text string

	// Report is the finished analysis of Text
	Report *model.Report

	// Prompt overrides the default prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ReframeResponse contains the provider's rewording
type ReframeResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 600,
	}
}

// maxPromptChars bounds how much source text is sent to a provider
const maxPromptChars = 6000

const systemPrompt = "You help writers find collaborative, unity-oriented phrasings. " +
	"You preserve meaning, facts and tone. You never lecture the author."

// BuildPrompt constructs the default rewording prompt
func BuildPrompt(text string, report *model.Report) string {
	var b strings.Builder

	b.WriteString("The following text was analyzed for separation-based and unity-based language.\n\n")
	if report != nil {
		fmt.Fprintf(&b, "Unity coefficient: %.2f (0 = separation, 1 = unity)\n", report.Coefficient())
		b.WriteString("Separation markers found: ")
		b.WriteString(joinMarkers(report.SeparationHits().Ranked(), 10))
		b.WriteString("\n")
		if info := report.ContextInfo(); info != nil {
			fmt.Fprintf(&b, "Content type: %s\n", info.Context.ContentType)
		}
		b.WriteString("\n")
	}

	b.WriteString(`RULES:
1. Rewrite the text so it frames the same content through cooperation and shared purpose.
2. Keep every fact, name and number. Do not add claims.
3. Keep roughly the same length and the same language.
4. Return ONLY the rewritten text, with no preamble or commentary.

TEXT:
`)
	b.WriteString(truncate(text, maxPromptChars))

	return b.String()
}

func joinMarkers(ranked []model.MarkerCount, limit int) string {
	if len(ranked) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, limit)
	for i, mc := range ranked {
		if i >= limit {
			parts = append(parts, fmt.Sprintf("and %d more", len(ranked)-limit))
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", mc.Marker, mc.Count))
	}
	return strings.Join(parts, ", ")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n[...]"
}

// cleanResponse strips wrapping a model may add around the rewritten text
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
