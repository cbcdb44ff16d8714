package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/score"
)

// Suggester asks an LLM for a unity-oriented rewording of separation-heavy
// text. Suggestions are produced after scoring and never alter the report.
type Suggester struct {
	provider Provider
	strategy score.Strategy
	config   Config
}

// NewSuggester creates a suggester; a config with no provider yields a
// disabled suggester rather than an error
func NewSuggester(config Config, strategy score.Strategy) (*Suggester, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return NewSuggesterWith(provider, config, strategy), nil
}

// NewSuggesterWith wraps an existing provider
func NewSuggesterWith(provider Provider, config Config, strategy score.Strategy) *Suggester {
	if strategy == nil {
		strategy = score.NewKeywordScorer()
	}
	return &Suggester{
		provider: provider,
		strategy: strategy,
		config:   config,
	}
}

// IsEnabled reports whether a provider is configured
func (s *Suggester) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider, or "" when disabled
func (s *Suggester) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// Wants reports whether report qualifies for a suggestion: the context
// policy must allow reframing, or, without context, the text must lean
// towards separation
func Wants(report *model.Report) bool {
	if report == nil {
		return false
	}
	if info := report.ContextInfo(); info != nil {
		return info.ReframingAppropriate
	}
	return score.ClassifyBand(report.Coefficient()) == score.BandSeparation
}

// Suggest returns a rewording of text, or nil when suggestions are disabled
// or not appropriate. Provider failures are reported as warnings, not errors.
func (s *Suggester) Suggest(ctx context.Context, text string, report *model.Report) (*model.LLMSuggestion, error) {
	if !s.IsEnabled() || !Wants(report) {
		return nil, nil
	}

	suggestion := &model.LLMSuggestion{
		Provider:            s.provider.Name(),
		Model:               s.config.Model,
		OriginalCoefficient: report.Coefficient(),
	}

	if !s.provider.IsAvailable(ctx) {
		suggestion.Warnings = append(suggestion.Warnings,
			fmt.Sprintf("LLM provider %s is not available (check API key, base URL or network)", s.provider.Name()))
		return suggestion, nil
	}
	suggestion.Enabled = true

	resp, err := s.provider.Reframe(ctx, ReframeRequest{
		Text:      text,
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		suggestion.Warnings = append(suggestion.Warnings, fmt.Sprintf("Suggestion generation failed: %v", err))
		return suggestion, nil
	}

	if resp.Model != "" {
		suggestion.Model = resp.Model
	}
	suggestion.Suggestion = resp.Text

	rescored := s.strategy.Score(resp.Text)
	suggestion.SuggestionCoefficient = rescored.Coefficient

	suggestion.Warnings = append(suggestion.Warnings,
		fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
		fmt.Sprintf("Unity coefficient: %.2f original, %.2f suggested", report.Coefficient(), rescored.Coefficient),
	)
	if rescored.Coefficient <= report.Coefficient() {
		suggestion.Warnings = append(suggestion.Warnings,
			"Suggestion did not raise the unity coefficient; treat it with caution")
	}

	return suggestion, nil
}

// RenderSeparateMarkdown renders a suggestion as a standalone markdown file.
// It returns "" for nil or disabled suggestions.
func RenderSeparateMarkdown(s *model.LLMSuggestion) string {
	if s == nil || !s.Enabled {
		return ""
	}

	var b strings.Builder

	b.WriteString("# LLM Reframing Suggestion\n\n")
	b.WriteString("> **GENERATED CONTENT.** This rewording was produced by a language model after analysis.\n")
	b.WriteString("> The unity coefficient in the main report was determined independently and is not affected by it.\n")
	b.WriteString("> You have complete sovereignty over your expression; use it only if it serves you.\n\n")

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Provider | %s |\n", s.Provider)
	if s.Model != "" {
		fmt.Fprintf(&b, "| Model | %s |\n", s.Model)
	}
	fmt.Fprintf(&b, "| Original coefficient | %.2f |\n", s.OriginalCoefficient)
	if s.Suggestion != "" {
		fmt.Fprintf(&b, "| Suggestion coefficient | %.2f |\n", s.SuggestionCoefficient)
	}
	b.WriteString("\n")

	b.WriteString("## Suggestion\n\n")
	if s.Suggestion == "" {
		b.WriteString("_No suggestion was generated._\n")
	} else {
		b.WriteString(s.Suggestion)
		b.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
