package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/score"
)

// StdoutPath as an output path writes to standard output
const StdoutPath = "-"

// Renderer renders results as JSON, Markdown and a terminal summary
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a new renderer writing summaries to stdout
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		out:           os.Stdout,
	}
}

// SetOutput redirects stdout rendering
func (r *Renderer) SetOutput(w io.Writer) {
	r.out = w
}

// ResultDocument is the JSON envelope of one analyzed source
type ResultDocument struct {
	Source     string               `json:"source"`
	Title      string               `json:"title,omitempty"`
	FinalURL   string               `json:"final_url,omitempty"`
	AnalyzedAt time.Time            `json:"analyzed_at"`
	Report     *model.Report        `json:"report"`
	LLM        *model.LLMSuggestion `json:"llm,omitempty"`
}

// Document returns the JSON envelope for result
func (res *Result) Document() ResultDocument {
	return ResultDocument{
		Source:     res.Source,
		Title:      res.Title,
		FinalURL:   res.FinalURL,
		AnalyzedAt: res.AnalyzedAt,
		Report:     res.Report,
		LLM:        res.Suggestion,
	}
}

// MarshalResult encodes result as indented JSON
func MarshalResult(result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(result.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderJSON writes result as JSON to path
func (r *Renderer) RenderJSON(result *Result, path string) error {
	data, err := MarshalResult(result)
	if err != nil {
		return err
	}
	return r.write(path, data)
}

// RenderMarkdown writes result as Markdown to path
func (r *Renderer) RenderMarkdown(result *Result, path string) error {
	return r.write(path, []byte(r.Markdown(result)))
}

// RenderLLMMarkdown writes an already rendered suggestion to path
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if markdown == "" {
		return nil
	}
	return r.write(path, []byte(markdown))
}

func (r *Renderer) write(path string, data []byte) error {
	if path == StdoutPath {
		_, err := r.out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// BandLabel is the human name of a coefficient band
func BandLabel(coefficient float64) string {
	switch score.ClassifyBand(coefficient) {
	case score.BandHighUnity:
		return "High unity"
	case score.BandBalanced:
		return "Balanced"
	default:
		return "Separation-leaning"
	}
}

// Markdown renders result as a Markdown document
func (r *Renderer) Markdown(result *Result) string {
	report := result.Report
	var b strings.Builder

	heading := result.Title
	if heading == "" {
		heading = result.Source
	}
	fmt.Fprintf(&b, "# Unity Coefficient Report: %s\n\n", heading)

	fmt.Fprintf(&b, "**Source:** %s  \n", result.Source)
	if result.FinalURL != "" && result.FinalURL != result.Source {
		fmt.Fprintf(&b, "**Final URL:** %s  \n", result.FinalURL)
	}
	fmt.Fprintf(&b, "**Analyzed:** %s  \n", result.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Method:** %s\n\n", report.AnalysisMethod())

	b.WriteString("## Unity Coefficient\n\n")
	fmt.Fprintf(&b, "**%.4f** (%s)\n\n", report.Coefficient(), BandLabel(report.Coefficient()))
	fmt.Fprintf(&b, "`%s`\n\n", meter(report.Coefficient(), 40))

	b.WriteString("## Conscious Reframing\n\n")
	for _, line := range strings.Split(report.ConsciousReframing(), "\n") {
		if line == "" {
			b.WriteString(">\n")
			continue
		}
		fmt.Fprintf(&b, "> %s\n", line)
	}
	b.WriteString("\n")

	if info := report.ContextInfo(); info != nil {
		ctx := info.Context
		b.WriteString("## Context\n\n")
		b.WriteString("| Field | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Content type | %s |\n", ctx.ContentType)
		if ctx.Genre != "" {
			fmt.Fprintf(&b, "| Genre | %s |\n", ctx.Genre)
		}
		if ctx.Intent != "" {
			fmt.Fprintf(&b, "| Intent | %s |\n", ctx.Intent)
		}
		fmt.Fprintf(&b, "| Confidence | %.0f%% |\n", ctx.Confidence*100)
		fmt.Fprintf(&b, "| Creative license | %s |\n", yesNo(info.CreativeLicenseRespected))
		fmt.Fprintf(&b, "| Reframing appropriate | %s |\n\n", yesNo(info.ReframingAppropriate))

		if len(info.Notes) > 0 {
			b.WriteString("### Notes\n\n")
			for _, note := range info.Notes {
				fmt.Fprintf(&b, "- %s\n", note)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Markers\n\n")
	writeHits(&b, "Separation", report.SeparationHits())
	writeHits(&b, "Unity", report.UnityHits())

	if result.Suggestion != nil && result.Suggestion.Enabled {
		b.WriteString("## LLM Suggestion\n\n")
		b.WriteString("A rewording suggestion was generated separately (see the `.llm.md` file). ")
		b.WriteString("It does not affect the coefficient above.\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Generated by lovekey. The unity coefficient describes language patterns only; " +
			"it is informational and never a judgement of the author._\n")
	}

	return b.String()
}

func writeHits(b *strings.Builder, label string, hits model.MarkerHits) {
	fmt.Fprintf(b, "### %s (%d)\n\n", label, hits.Total())
	ranked := hits.Ranked()
	if len(ranked) == 0 {
		b.WriteString("_None found._\n\n")
		return
	}
	b.WriteString("| Marker | Count |\n|---|---|\n")
	for _, mc := range ranked {
		fmt.Fprintf(b, "| %s | %d |\n", mc.Marker, mc.Count)
	}
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// meter draws the coefficient as a bar from separation to unity
func meter(coefficient float64, width int) string {
	filled := int(coefficient*float64(width) + 0.5)
	return "separation [" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "] unity"
}

// RenderSummary prints a coloured summary of result
func (r *Renderer) RenderSummary(result *Result) {
	report := result.Report
	coef := report.Coefficient()

	bandColor := color.New(color.FgRed, color.Bold)
	switch score.ClassifyBand(coef) {
	case score.BandHighUnity:
		bandColor = color.New(color.FgGreen, color.Bold)
	case score.BandBalanced:
		bandColor = color.New(color.FgYellow, color.Bold)
	}
	dim := color.New(color.Faint)
	bold := color.New(color.Bold)

	fmt.Fprintln(r.out)
	_, _ = bold.Fprintf(r.out, "Unity Coefficient: ")
	_, _ = bandColor.Fprintf(r.out, "%.4f (%s)\n", coef, BandLabel(coef))
	_, _ = dim.Fprintf(r.out, "  Source: %s\n", result.Source)
	if result.FromCache {
		_, _ = dim.Fprintln(r.out, "  (served from cache)")
	}
	fmt.Fprintf(r.out, "  %s\n", meter(coef, 30))
	fmt.Fprintf(r.out, "  Separation markers: %d   Unity markers: %d\n",
		report.SeparationHits().Total(), report.UnityHits().Total())

	if info := report.ContextInfo(); info != nil {
		fmt.Fprintf(r.out, "  Context: %s (confidence %.0f%%)\n", info.Context.ContentType, info.Context.Confidence*100)
		if info.CreativeLicenseRespected {
			_, _ = color.New(color.FgCyan).Fprintln(r.out, "  Creative license respected")
		}
		if info.ReframingAppropriate {
			_, _ = color.New(color.FgMagenta).Fprintln(r.out, "  Alternative framing available if desired")
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, indent(report.ConsciousReframing(), "  "))

	if s := result.Suggestion; s != nil {
		fmt.Fprintln(r.out)
		if s.Enabled && s.Suggestion != "" {
			_, _ = bold.Fprintf(r.out, "  LLM suggestion (%s): ", s.Provider)
			fmt.Fprintf(r.out, "coefficient %.2f -> %.2f\n", s.OriginalCoefficient, s.SuggestionCoefficient)
		}
		for _, w := range s.Warnings {
			_, _ = dim.Fprintf(r.out, "  %s\n", w)
		}
	}
	fmt.Fprintln(r.out)
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
