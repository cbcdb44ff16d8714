package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/lovekey/internal/cache"
	"github.com/ppiankov/lovekey/internal/extract"
	"github.com/ppiankov/lovekey/internal/extract/adapters"
	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/util"
	"go.uber.org/zap"
)

// StdinSource selects standard input as the text source
const StdinSource = "-"

// ErrEmptySource is returned when a source yields no text at all
var ErrEmptySource = errors.New("source has no readable text")

// Document is text ready for analysis
type Document struct {
	Source      string `json:"source"`
	Title       string `json:"title,omitempty"`
	FinalURL    string `json:"final_url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Extractor   string `json:"extractor,omitempty"`
	Text        string `json:"text"`
	FromCache   bool   `json:"-"`
}

// Loader resolves a source (URL, file path or "-") into a Document
type Loader struct {
	fetcher  *Fetcher
	robots   *util.RobotsChecker
	adapters *adapters.Registry
	cache    cache.Cache
	stdin    io.Reader
	maxBytes int64
	logger   *zap.Logger
}

// NewLoader creates a loader from configuration. store may be nil.
func NewLoader(cfg *model.Config, store cache.Cache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, fetcher.Client(), logger)
	}

	return &Loader{
		fetcher:  fetcher,
		robots:   robots,
		adapters: adapters.NewRegistry(),
		cache:    store,
		stdin:    os.Stdin,
		maxBytes: cfg.HTTP.MaxBodyBytes,
		logger:   logger,
	}
}

// IsURL reports whether source is fetched over HTTP
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads source and extracts its visible text
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	switch {
	case source == StdinSource:
		return l.loadReader(source, l.stdin, "")
	case IsURL(source):
		return l.loadURL(ctx, source)
	default:
		return l.loadFile(source)
	}
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*Document, error) {
	key := cache.Key(rawURL)
	if l.cache != nil {
		if raw, found := l.cache.Get(key); found {
			var doc Document
			if err := json.Unmarshal(raw, &doc); err == nil {
				l.logger.Debug("cache hit", zap.String("source", rawURL))
				doc.FromCache = true
				return &doc, nil
			}
		}
	}

	if l.robots != nil {
		if err := l.robots.Check(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	l.logger.Debug("fetching", zap.String("url", rawURL))
	result, err := l.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := l.newDocument(rawURL, result.Body, result.ContentType)
	if err != nil {
		return nil, err
	}
	doc.FinalURL = result.FinalURL

	if l.cache != nil {
		if raw, err := json.Marshal(doc); err == nil {
			if err := l.cache.Set(key, raw, 0); err != nil {
				l.logger.Warn("cache write failed", zap.String("source", rawURL), zap.Error(err))
			}
		}
	}

	return doc, nil
}

func (l *Loader) loadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = f.Close() }()

	contentType := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		contentType = "text/html"
	}
	return l.loadReader(path, f, contentType)
}

func (l *Loader) loadReader(source string, r io.Reader, contentType string) (*Document, error) {
	limit := l.maxBytes
	if limit <= 0 {
		limit = 2_000_000
	}
	// One extra byte tells a source that fits exactly from one that was cut
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if int64(len(raw)) > limit {
		raw = raw[:limit]
		l.logger.Warn("source truncated, analyzing the first bytes only",
			zap.String("source", source), zap.Int64("max_bytes", limit))
	}
	return l.newDocument(source, string(raw), contentType)
}

func (l *Loader) newDocument(source, body, contentType string) (*Document, error) {
	doc := &Document{Source: source, ContentType: contentType, Text: body}

	if extract.IsHTML(contentType) {
		page, extractor, err := l.adapters.Extract(source, contentType, body)
		if err != nil {
			return nil, err
		}
		doc.Title = page.Title
		doc.Text = page.Text
		doc.Extractor = extractor
	}

	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	return doc, nil
}
