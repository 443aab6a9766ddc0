package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/faqharvest/internal/logger"
	"golang.org/x/net/html"
)

// ErrNoDocument is the error carried by a LoadResult that holds no document.
var ErrNoDocument = errors.New("no document")

// Document is a parsed page and the URL it stands for
type Document struct {
	URL  string
	Root *html.Node
}

// LoadResult is the outcome of a load: either a Document or the reason there is none.
type LoadResult struct {
	Doc *Document
	Err error
}

// OK reports whether a document was loaded.
func (r LoadResult) OK() bool {
	return r.Err == nil && r.Doc != nil && r.Doc.Root != nil
}

func failed(err error) LoadResult {
	return LoadResult{Err: err}
}

// Loader turns URLs and pinned files into parsed documents. It never panics
// or returns errors out of band; every failure is logged and carried in the LoadResult.
type Loader struct {
	fetcher *Fetcher
	log     logger.Logger
}

// NewLoader creates a Loader
func NewLoader(fetcher *Fetcher, log logger.Logger) *Loader {
	return &Loader{fetcher: fetcher, log: log}
}

// Load fetches and parses rawURL.
func (l *Loader) Load(ctx context.Context, rawURL string) LoadResult {
	start := time.Now()

	res, err := l.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		l.log.Warn("fetch failed", logger.String("url", rawURL), logger.Error(err))
		return failed(fmt.Errorf("load %s: %w", rawURL, err))
	}

	root, err := html.Parse(strings.NewReader(res.HTML))
	if err != nil {
		l.log.Warn("parse failed", logger.String("url", rawURL), logger.Error(err))
		return failed(fmt.Errorf("parse %s: %w", rawURL, err))
	}

	l.log.Debug("page loaded",
		logger.String("url", rawURL),
		logger.Int("bytes", len(res.HTML)),
		logger.Bool("cached", res.FromCache),
		logger.Duration("elapsed", time.Since(start)),
	)

	return LoadResult{Doc: &Document{URL: rawURL, Root: root}}
}

// LoadFile parses a pinned local copy of canonicalURL.
func (l *Loader) LoadFile(path, canonicalURL string) LoadResult {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Warn("pinned document unavailable", logger.String("path", path), logger.Error(err))
		return failed(fmt.Errorf("read pinned %s: %w", path, err))
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		l.log.Warn("parse failed", logger.String("path", path), logger.Error(err))
		return failed(fmt.Errorf("parse pinned %s: %w", path, err))
	}

	l.log.Debug("pinned document loaded", logger.String("path", path), logger.String("url", canonicalURL))
	return LoadResult{Doc: &Document{URL: canonicalURL, Root: root}}
}
