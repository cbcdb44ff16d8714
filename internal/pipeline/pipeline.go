package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/lovekey/internal/cache"
	"github.com/ppiankov/lovekey/internal/llm"
	"github.com/ppiankov/lovekey/internal/model"
	"go.uber.org/zap"
)

// Pipeline loads a source, analyzes it and optionally asks for a rewording
type Pipeline struct {
	loader    *Loader
	analyzer  *Analyzer
	renderer  *Renderer
	suggester *llm.Suggester // nil when suggestions are disabled
	cache     cache.Cache
	cacheSet  bool
	user      *model.UserContext
	config    *model.Config
	logger    *zap.Logger
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithUserContext applies an explicit content context to every analysis
func WithUserContext(user *model.UserContext) Option {
	return func(p *Pipeline) {
		p.user = user
	}
}

// WithCache overrides the cache built from configuration; nil disables caching
func WithCache(store cache.Cache) Option {
	return func(p *Pipeline) {
		p.cache = store
		p.cacheSet = true
	}
}

// WithSuggester sets the rewording suggester
func WithSuggester(s *llm.Suggester) Option {
	return func(p *Pipeline) {
		p.suggester = s
	}
}

// NewPipeline creates a new pipeline with the given configuration.
// A misconfigured LLM provider is logged and leaves suggestions disabled.
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	analyzer := NewAnalyzer()

	p := &Pipeline{
		analyzer: analyzer,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
		logger:   zap.NewNop(),
	}

	var suggesterErr error
	if cfg.LLM.Provider != "" {
		p.suggester, suggesterErr = llm.NewSuggester(llm.ConfigFromModel(cfg), analyzer.Strategy())
	}

	for _, opt := range opts {
		opt(p)
	}

	// The loader and its robots checker share the configured logger
	if !p.cacheSet {
		p.cache = cache.New(cfg.Cache)
	}
	p.loader = NewLoader(cfg, p.cache, p.logger)

	if suggesterErr != nil {
		p.logger.Warn("LLM provider disabled", zap.String("provider", cfg.LLM.Provider), zap.Error(suggesterErr))
	}

	return p
}

// Result is one analyzed source
type Result struct {
	Source     string
	Title      string
	FinalURL   string
	FromCache  bool
	Report     *model.Report
	Suggestion *model.LLMSuggestion
	AnalyzedAt time.Time
}

// AnalyzeSource loads source (URL, file or "-") and analyzes its text
func (p *Pipeline) AnalyzeSource(ctx context.Context, source string) (*Result, error) {
	doc, err := p.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result, err := p.analyzeDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AnalyzeText analyzes inline text; label names it in rendered output
func (p *Pipeline) AnalyzeText(ctx context.Context, label, text string) (*Result, error) {
	return p.analyzeDocument(ctx, &Document{Source: label, Text: text})
}

func (p *Pipeline) analyzeDocument(ctx context.Context, doc *Document) (*Result, error) {
	report, err := p.analyzer.Analyze(doc.Text, p.user, p.config.Analysis.IncludeContext)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	p.logger.Debug("analyzed",
		zap.String("source", doc.Source),
		zap.Float64("coefficient", report.Coefficient()),
		zap.Bool("cached", doc.FromCache))

	result := &Result{
		Source:     doc.Source,
		Title:      doc.Title,
		FinalURL:   doc.FinalURL,
		FromCache:  doc.FromCache,
		Report:     report,
		AnalyzedAt: time.Now().UTC(),
	}

	// Suggestions come after scoring and never change the report
	if p.suggester.IsEnabled() {
		suggestion, err := p.suggester.Suggest(ctx, doc.Text, report)
		if err != nil {
			p.logger.Warn("LLM suggestion failed", zap.String("source", doc.Source), zap.Error(err))
		}
		result.Suggestion = suggestion
	}

	return result, nil
}

// RenderReport renders the result to the requested outputs and prints the
// terminal summary
func (p *Pipeline) RenderReport(result *Result, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose && jsonPath != StdoutPath {
			p.logger.Info("wrote JSON", zap.String("path", jsonPath))
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose && mdPath != StdoutPath {
			p.logger.Info("wrote markdown", zap.String("path", mdPath))
		}
	}

	// Suggestion goes to a separate file next to the markdown report
	if result.Suggestion != nil && result.Suggestion.Enabled && mdPath != "" && mdPath != StdoutPath {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.Suggestion), llmPath); err != nil {
			p.logger.Warn("failed to write LLM suggestion", zap.String("path", llmPath), zap.Error(err))
		} else if verbose {
			p.logger.Info("wrote LLM suggestion", zap.String("path", llmPath))
		}
	}

	if jsonPath != StdoutPath && mdPath != StdoutPath {
		p.renderer.RenderSummary(result)
	}

	return nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
