package pipeline

import (
	"fmt"

	"github.com/ppiankov/lovekey/internal/contextual"
	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/score"
)

// Analyzer turns text into a report. It holds no mutable state and is safe
// for concurrent use.
type Analyzer struct {
	strategy       score.Strategy
	contextualizer *contextual.Contextualizer
}

// NewAnalyzer creates an analyzer with the keyword density strategy
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWith(score.NewKeywordScorer())
}

// NewAnalyzerWith creates an analyzer around a custom scoring strategy
func NewAnalyzerWith(strategy score.Strategy) *Analyzer {
	return &Analyzer{
		strategy:       strategy,
		contextualizer: contextual.NewContextualizer(),
	}
}

// Strategy returns the scoring strategy in use
func (a *Analyzer) Strategy() score.Strategy {
	return a.strategy
}

// Analyze scores text and, when includeContext is set, adapts the message
// to the detected or user-supplied content context
func (a *Analyzer) Analyze(text string, user *model.UserContext, includeContext bool) (*model.Report, error) {
	// 1. Context-free score
	base := a.strategy.Score(text)

	if !includeContext {
		report, err := model.NewReport(base.Coefficient, base.Method, base.SeparationHits, base.UnityHits, base.Message, nil)
		if err != nil {
			return nil, fmt.Errorf("build report: %w", err)
		}
		return report, nil
	}

	// 2. Detect context and apply policy
	info := a.contextualizer.Analyze(base.Coefficient, text, user)

	// 3. Rewrite the final message
	message := contextual.ComposeReframing(base.Message, info)

	report, err := model.NewReport(base.Coefficient, base.Method, base.SeparationHits, base.UnityHits, message, &info)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return report, nil
}

var defaultAnalyzer = NewAnalyzer()

// Analyze runs the default analyzer
func Analyze(text string, user *model.UserContext, includeContext bool) (*model.Report, error) {
	return defaultAnalyzer.Analyze(text, user, includeContext)
}
