package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/lovekey/internal/llm"
	"github.com/ppiankov/lovekey/internal/pipeline"
	"github.com/ppiankov/lovekey/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchType    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many sources from a file in parallel",
	Long: `Batch analyzes every source listed in a file:
- One URL or file path per line, # starts a comment, duplicates are skipped
- Sources are analyzed in parallel with a configurable worker count
- URL sources are rate limited per host
- A JSON and Markdown report is written for each source

Example:
  lovekey batch sources.txt
  lovekey batch sources.txt --concurrency 8 --output-dir ./reports
  lovekey batch sources.txt --type business --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lovekey-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchType, "type", "", "content type applied to every source")
	batchCmd.Flags().BoolVar(&noContext, "no-context", false, "skip context analysis")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	addFetchFlags(batchCmd)
	addLLMFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  lovekey batch\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(os.Stderr, "\n")

	sources, err := worker.ReadSourcesFromFile(file)
	if err != nil {
		return fmt.Errorf("read sources: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d sources\n\n", len(sources))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if batchType != "" {
		ctxType = batchType
		opts = append(opts, pipeline.WithUserContext(userContextFromFlags()))
	}
	p := pipeline.NewPipeline(cfg, opts...)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	processor.SetLogger(logger)

	results := processor.ProcessSources(ctx, sources)
	renderer := p.Renderer()

	for _, res := range results {
		if res.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Source, res.Error)
			continue
		}

		base := filepath.Join(outputDir, fmt.Sprintf("%03d-%s", res.Index+1, sanitizeFilename(res.Source)))
		if err := renderer.RenderJSON(res.Result, base+".json"); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", res.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(res.Result, base+".md"); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", res.Source, err)
			continue
		}
		if s := res.Result.Suggestion; s != nil && s.Enabled {
			if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(s), base+".llm.md"); err != nil {
				logger.Warn("failed to write LLM suggestion", zap.String("source", res.Source), zap.Error(err))
			}
		}

		coef := res.Result.Report.Coefficient()
		fmt.Fprintf(os.Stderr, "✓ %s: %.4f (%s)\n", res.Source, coef, pipeline.BandLabel(coef))
	}

	summary := worker.Summarize(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Batch complete\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", summary.Total)
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", summary.Succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", summary.Failed)
	if summary.Succeeded > 0 {
		fmt.Fprintf(os.Stderr, "  Unity:     mean %.4f, min %.4f, max %.4f\n",
			summary.MeanCoefficient, summary.MinCoefficient, summary.MaxCoefficient)
	}
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if summary.Succeeded == 0 && summary.Total > 0 {
		return fmt.Errorf("all %d sources failed", summary.Total)
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"https://", "",
	"http://", "",
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

const maxFilenameBytes = 100

// truncateRunes cuts s to at most limit bytes without splitting a rune
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// sanitizeFilename turns a URL or path into a safe file name stem
func sanitizeFilename(s string) string {
	if !pipeline.IsURL(s) {
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}
	s = strings.Trim(filenameReplacer.Replace(s), "._-")
	if s == "" {
		s = "source"
	}

	return truncateRunes(s, maxFilenameBytes)
}
