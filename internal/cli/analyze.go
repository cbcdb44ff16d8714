package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inlineText      string
	ctxType         string
	ctxGenre        string
	ctxIntent       string
	creativeLicense bool
	noContext       bool
	outJSON         string
	outMD           string
	timeout         time.Duration
	userAgent       string
	maxBytes        int64
	noCache         bool
	noFooter        bool
	noRobots        bool
	insecureTLS     bool
	httpProxy       string
	httpsProxy      string
	suggest         bool
	llmProvider     string
	llmModel        string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [source]",
	Short: "Compute the unity coefficient of a file, URL, stdin or inline text",
	Long: `Analyze scores one text for separation and unity language:
- Count separation and unity markers
- Compute the unity coefficient (0 = separation, 1 = unity)
- Detect the content type (horror, business, technical, ...) or use yours
- Respect creative license and offer an alternative framing where it fits

The source is a file path, an http(s) URL, or "-" for stdin (the default).

Example:
  lovekey analyze essay.md
  lovekey analyze https://example.com/post --json report.json --md report.md
  lovekey analyze --text "We must defeat the enemy." --type business
  cat chapter.txt | lovekey analyze - --type fiction --genre horror
  lovekey analyze memo.txt --suggest --llm-provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inlineText, "text", "", "analyze this text instead of a source")

	// Context flags
	analyzeCmd.Flags().StringVar(&ctxType, "type", "", "content type (fiction, horror, comedy, satire, technical, business, personal, academic, spiritual, artistic, journalistic)")
	analyzeCmd.Flags().StringVar(&ctxGenre, "genre", "", "genre, e.g. horror or comedy")
	analyzeCmd.Flags().StringVar(&ctxIntent, "intent", "", "author intent, e.g. entertain or persuade")
	analyzeCmd.Flags().BoolVar(&creativeLicense, "creative-license", false, "treat the text as creative work")
	analyzeCmd.Flags().BoolVar(&noContext, "no-context", false, "skip context analysis (plain coefficient and message)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", `output JSON path ("-" for stdout)`)
	analyzeCmd.Flags().StringVar(&outMD, "md", "", `output Markdown path ("-" for stdout)`)
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	addFetchFlags(analyzeCmd)
	addLLMFlags(analyzeCmd)
}

// addFetchFlags registers the HTTP flags shared by analyze and batch
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "fetch-timeout", 30*time.Second, "timeout for fetching a single URL")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max bytes to read per source")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// addLLMFlags registers the suggestion flags shared by analyze and batch
func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&suggest, "suggest", false, "ask an LLM for an alternative wording when reframing is appropriate")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

// applyFlags overlays explicitly set flags on the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()

	if flags.Changed("fetch-timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noContext {
		cfg.Analysis.IncludeContext = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	if !suggest {
		cfg.LLM.Provider = ""
		return nil
	}

	if flags.Changed("llm-provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" && os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unknown LLM provider %q (supported: openai, ollama)", cfg.LLM.Provider)
	}
	return nil
}

// userContextFromFlags returns the declared context, or nil when none of
// the context flags were given
func userContextFromFlags() *model.UserContext {
	user := &model.UserContext{
		Type:            ctxType,
		Genre:           ctxGenre,
		Intent:          ctxIntent,
		CreativeLicense: creativeLicense,
	}
	if user.IsZero() {
		return nil
	}
	if ctxType != "" && model.ParseContentType(ctxType) == model.ContentUnknown {
		fmt.Fprintf(os.Stderr, "Warning: unrecognized content type %q, treating it as unknown\n", ctxType)
	}
	return user
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	source := pipeline.StdinSource
	if len(args) == 1 {
		source = args[0]
	}
	if inlineText != "" && len(args) == 1 {
		return fmt.Errorf("use either a source or --text, not both")
	}

	p := pipeline.NewPipeline(cfg,
		pipeline.WithLogger(logger),
		pipeline.WithUserContext(userContextFromFlags()),
	)

	// Fetch timeout plus room for an LLM round trip
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout+time.Duration(cfg.LLM.Timeout)*time.Second)
	defer cancel()

	var result *pipeline.Result
	if inlineText != "" {
		result, err = p.AnalyzeText(ctx, "inline text", inlineText)
	} else {
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing: %s\n", source)
		}
		result, err = p.AnalyzeSource(ctx, source)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.RenderReport(result, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
