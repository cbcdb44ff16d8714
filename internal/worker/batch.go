package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/lovekey/internal/pipeline"
	"go.uber.org/zap"
)

// Analyzer analyzes a single source
type Analyzer interface {
	AnalyzeSource(ctx context.Context, source string) (*pipeline.Result, error)
}

// AnalyzeJob analyzes one source of a batch
type AnalyzeJob struct {
	Index    int
	Source   string
	Analyzer Analyzer
	Limiter  *Limiter // applied to URL sources only; may be nil
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && pipeline.IsURL(j.Source) {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &AnalyzeResult{Index: j.Index, Source: j.Source, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	result, err := j.Analyzer.AnalyzeSource(ctx, j.Source)
	return &AnalyzeResult{
		Index:  j.Index,
		Source: j.Source,
		Result: result,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one batch entry
type AnalyzeResult struct {
	Index  int
	Source string
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many sources concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor. A non-positive
// requestsPerSecond disables per-host rate limiting.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
		logger:      zap.NewNop(),
	}
}

// SetLogger sets the structured logger
func (b *BatchProcessor) SetLogger(logger *zap.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// ProcessSources analyzes sources concurrently and returns results in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*AnalyzeResult {
	if len(sources) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, source := range sources {
		pool.Submit(&AnalyzeJob{
			Index:    i,
			Source:   source,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	// Jobs dropped by a cancelled pool still get a result slot
	results := make([]*AnalyzeResult, len(sources))
	for _, r := range pool.Wait() {
		res := r.(*AnalyzeResult)
		results[res.Index] = res
	}

	for i, res := range results {
		if res == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			res = &AnalyzeResult{Index: i, Source: sources[i], Error: fmt.Errorf("not analyzed: %w", err)}
			results[i] = res
		}
		if res.Error != nil {
			b.logger.Warn("analysis failed", zap.String("source", res.Source), zap.Error(res.Error))
		}
	}

	return results
}

// ProcessFile reads sources from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads sources (URLs or paths), one per line.
// Blank lines and # comments are skipped and duplicates dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

// Summary aggregates a finished batch
type Summary struct {
	Total           int     `json:"total"`
	Succeeded       int     `json:"succeeded"`
	Failed          int     `json:"failed"`
	MeanCoefficient float64 `json:"mean_coefficient"`
	MinCoefficient  float64 `json:"min_coefficient"`
	MaxCoefficient  float64 `json:"max_coefficient"`
}

// Summarize computes aggregate statistics over successful results
func Summarize(results []*AnalyzeResult) Summary {
	s := Summary{Total: len(results)}
	sum := 0.0
	for _, r := range results {
		if r.Error != nil || r.Result == nil {
			s.Failed++
			continue
		}
		c := r.Result.Report.Coefficient()
		if s.Succeeded == 0 || c < s.MinCoefficient {
			s.MinCoefficient = c
		}
		if s.Succeeded == 0 || c > s.MaxCoefficient {
			s.MaxCoefficient = c
		}
		s.Succeeded++
		sum += c
	}
	if s.Succeeded > 0 {
		s.MeanCoefficient = sum / float64(s.Succeeded)
	}
	return s
}
