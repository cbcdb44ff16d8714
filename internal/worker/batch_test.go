package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/lovekey/internal/pipeline"
)

// MockAnalyzer implements Analyzer by scoring canned text per source
type MockAnalyzer struct {
	Texts       map[string]string
	ShouldError bool
	calls       atomic.Int32
}

func (m *MockAnalyzer) AnalyzeSource(ctx context.Context, source string) (*pipeline.Result, error) {
	m.calls.Add(1)
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("analyze error")
	}

	text, ok := m.Texts[source]
	if !ok {
		text = "We build this together."
	}
	report, err := pipeline.Analyze(text, nil, true)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{Source: source, Report: report}, nil
}

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessSources(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	sources := []string{"http://example.com", "essay.txt", "http://other.example/post"}
	results := processor.ProcessSources(context.Background(), sources)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
			continue
		}
		if res.Result == nil || res.Result.Report == nil {
			t.Errorf("expected report for %s", res.Source)
		}
		if res.Index != i || res.Source != sources[i] {
			t.Errorf("result %d out of order: index %d source %s", i, res.Index, res.Source)
		}
	}
}

func TestBatchProcessor_ProcessSources_Error(t *testing.T) {
	analyzer := &MockAnalyzer{ShouldError: true}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results := processor.ProcessSources(context.Background(), []string{"http://example.com"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Result != nil {
		t.Error("expected nil result on error")
	}
}

func TestBatchProcessor_ProcessSources_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results := processor.ProcessSources(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ManySources(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 3, 0, 0)

	sources := make([]string, 40)
	for i := range sources {
		sources[i] = filepath.Join("docs", string(rune('a'+i%26)), "page.txt")
	}

	results := processor.ProcessSources(context.Background(), sources)
	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	if got := analyzer.calls.Load(); got != int32(len(sources)) {
		t.Errorf("expected %d analyzer calls, got %d", len(sources), got)
	}
}

func TestBatchProcessor_RateLimitsURLSources(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 4, 100, 1)
	if processor.limiter == nil {
		t.Fatal("expected limiter when requests per second is set")
	}

	sources := []string{"http://example.com/a", "http://example.com/b", "notes.txt"}
	results := processor.ProcessSources(context.Background(), sources)

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
		}
	}
	// File sources never reach the limiter
	if processor.limiter.Hosts() != 1 {
		t.Errorf("expected 1 limited host, got %d", processor.limiter.Hosts())
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 1, 0.01, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan []*AnalyzeResult)
	go func() {
		done <- processor.ProcessSources(ctx, []string{"http://example.com/a", "http://example.com/b"})
	}()

	select {
	case results := <-done:
		if len(results) != 2 {
			t.Fatalf("expected a result per source, got %d", len(results))
		}
		for _, res := range results {
			if res.Error == nil {
				t.Errorf("expected error for %s after cancellation", res.Source)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessSources blocked on a cancelled context")
	}
}

// cancelOnFirstCall cancels the batch as soon as the first source starts
type cancelOnFirstCall struct {
	cancel context.CancelFunc
	calls  atomic.Int32
}

func (c *cancelOnFirstCall) AnalyzeSource(ctx context.Context, source string) (*pipeline.Result, error) {
	c.calls.Add(1)
	c.cancel()
	return nil, ctx.Err()
}

func TestBatchProcessor_CancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer := &cancelOnFirstCall{cancel: cancel}
	processor := NewBatchProcessor(analyzer, 1, 0, 0)

	sources := []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt", "g.txt", "h.txt"}
	results := processor.ProcessSources(ctx, sources)

	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	for i, res := range results {
		if res.Index != i || res.Source != sources[i] {
			t.Errorf("result %d: got index %d source %s", i, res.Index, res.Source)
		}
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", res.Source, res.Error)
		}
	}

	summary := Summarize(results)
	if summary.Total != len(sources) || summary.Failed != len(sources) || summary.Succeeded != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	path := writeSourcesFile(t, `http://example.com
# comment
./essays/draft.md
   
http://bing.com   `)

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "./essays/draft.md", "http://bing.com"}
	if len(sources) != len(expected) {
		t.Fatalf("expected %d sources, got %d", len(expected), len(sources))
	}
	for i, source := range sources {
		if source != expected[i] {
			t.Errorf("expected source %s at index %d, got %s", expected[i], i, source)
		}
	}
}

func TestReadSourcesFromFile_NonExistent(t *testing.T) {
	_, err := ReadSourcesFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadSourcesFromFile_Deduplication(t *testing.T) {
	path := writeSourcesFile(t, "http://example.com\nhttp://example.com\n")

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}
	if len(sources) != 1 {
		t.Errorf("expected 1 source after deduplication, got %d", len(sources))
	}
}

func TestAnalyzeResult_GetError(t *testing.T) {
	r1 := &AnalyzeResult{Source: "http://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("analysis failed")
	r2 := &AnalyzeResult{Source: "http://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeSourcesFile(t, "http://example.com\nhttps://google.com\n# comment\n\nhttp://bing.com\n")

	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	path := writeSourcesFile(t, "")

	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty file, got %d", len(results))
	}
}

func TestSummarize(t *testing.T) {
	analyzer := &MockAnalyzer{Texts: map[string]string{
		"unity.txt":      "love",
		"separation.txt": "fear",
		"mixed.txt":      "love fear",
	}}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results := processor.ProcessSources(context.Background(), []string{"unity.txt", "separation.txt", "mixed.txt"})
	results = append(results, &AnalyzeResult{Index: 3, Source: "broken.txt", Error: errors.New("boom")})

	s := Summarize(results)
	if s.Total != 4 || s.Succeeded != 3 || s.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.MinCoefficient != 0.0 || s.MaxCoefficient != 1.0 {
		t.Errorf("expected range 0..1, got %.4f..%.4f", s.MinCoefficient, s.MaxCoefficient)
	}
	if s.MeanCoefficient != 0.5 {
		t.Errorf("expected mean 0.5, got %.4f", s.MeanCoefficient)
	}
}
