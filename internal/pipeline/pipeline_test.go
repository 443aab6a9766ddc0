package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/faqharvest/internal/extract/adapters"
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/ppiankov/faqharvest/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// fakeLoader serves canned pages and fails for URLs listed in fail.
type fakeLoader struct {
	pages  map[string]string
	fail   map[string]bool
	loaded []string
}

func (f *fakeLoader) Load(_ context.Context, rawURL string) LoadResult {
	f.loaded = append(f.loaded, rawURL)
	if f.fail[rawURL] {
		return LoadResult{Err: errors.New("connection refused")}
	}
	root, err := selector.Parse(f.pages[rawURL])
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Doc: &Document{URL: rawURL, Root: root}}
}

func (f *fakeLoader) LoadFile(path, canonicalURL string) LoadResult {
	f.loaded = append(f.loaded, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{Err: err}
	}
	root, err := selector.Parse(string(data))
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Doc: &Document{URL: canonicalURL, Root: root}}
}

type memWriter struct {
	records []model.Record
	index   []model.IndexEntry
	calls   int
}

func (w *memWriter) Write(records []model.Record, index []model.IndexEntry) (int, error) {
	w.calls++
	w.records, w.index = records, index
	return 0, nil
}

func h3Source(id string) *adapters.Descriptor {
	return &adapters.Descriptor{
		ID:       id,
		Name:     "Source " + id,
		URLs:     []string{"https://" + id + ".example/faq"},
		Select:   selector.Tag("h3", "p"),
		IsMarker: selector.Tag("h3"),
		Style:    format.StyleDefault,
	}
}

func twoQuestions(prefix string) string {
	return `<h3>` + prefix + ` one?</h3><p>a</p><h3>` + prefix + ` two?</h3><p>b</p>`
}

func newTestPipeline(loader DocumentLoader, writer DatasetWriter, ds ...*adapters.Descriptor) *Pipeline {
	registry := &adapters.Registry{}
	for _, d := range ds {
		registry.Register(d)
	}
	p := New(loader, registry, writer, "", logger.NewNop())
	p.now = func() time.Time { return time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC) }
	return p
}

func TestPipeline_FaultIsolation(t *testing.T) {
	loader := &fakeLoader{
		pages: map[string]string{
			"https://a.example/faq": twoQuestions("A"),
			"https://b.example/faq": twoQuestions("B"),
			"https://c.example/faq": twoQuestions("C"),
		},
		fail: map[string]bool{},
	}

	w := &memWriter{}
	report, err := newTestPipeline(loader, w, h3Source("a"), h3Source("b"), h3Source("c")).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, report.Total)

	loader.fail["https://b.example/faq"] = true
	w = &memWriter{}
	report, err = newTestPipeline(loader, w, h3Source("a"), h3Source("b"), h3Source("c")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Failures())
	assert.True(t, report.Sources[1].Failed)
	assert.Contains(t, report.Sources[1].Error, "connection refused")

	var qs []string
	for _, r := range w.records {
		qs = append(qs, r.Question)
	}
	assert.Equal(t, []string{"A one?", "A two?", "C one?", "C two?"}, qs)
}

func TestPipeline_SharedRunTimestamp(t *testing.T) {
	loader := &fakeLoader{pages: map[string]string{
		"https://a.example/faq": twoQuestions("A"),
		"https://b.example/faq": twoQuestions("B"),
	}}
	w := &memWriter{}
	report, err := newTestPipeline(loader, w, h3Source("a"), h3Source("b")).Run(context.Background())
	require.NoError(t, err)

	want := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, want, report.CapturedAt)
	for _, r := range w.records {
		assert.Equal(t, want, r.CapturedAt)
	}
}

func TestPipeline_MultiplePagesFailTogether(t *testing.T) {
	d := h3Source("multi")
	d.URLs = []string{"https://multi.example/1", "https://multi.example/2"}

	loader := &fakeLoader{
		pages: map[string]string{"https://multi.example/1": twoQuestions("M")},
		fail:  map[string]bool{"https://multi.example/2": true},
	}
	w := &memWriter{}
	report, err := newTestPipeline(loader, w, d, h3Source("a")).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Sources[0].Failed)
	assert.Equal(t, 0, report.Sources[0].Entities)
	assert.Equal(t, 0, report.Total, "source a has no page and yields nothing")
}

func TestPipeline_PinnedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pinned.html"), []byte(twoQuestions("P")), 0644))

	d := h3Source("pinned")
	d.PinnedFile = "pinned.html"

	loader := &fakeLoader{}
	w := &memWriter{}
	p := newTestPipeline(loader, w, d)
	p.pinnedDir = dir

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, []string{filepath.Join(dir, "pinned.html")}, loader.loaded)
	assert.Equal(t, "https://pinned.example/faq", w.records[0].SourceURL)
}

func TestPipeline_PanicIsIsolated(t *testing.T) {
	bad := h3Source("bad")
	bad.Extract = func(_ *html.Node, _ string, _ model.Run) ([]model.Entity, error) {
		panic("missing field")
	}

	loader := &fakeLoader{pages: map[string]string{
		"https://bad.example/faq": "",
		"https://a.example/faq":   twoQuestions("A"),
	}}
	w := &memWriter{}
	report, err := newTestPipeline(loader, w, bad, h3Source("a")).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Sources[0].Failed)
	assert.Equal(t, 2, report.Total)
}

func TestPipeline_CancelledRunWritesNothing(t *testing.T) {
	loader := &fakeLoader{pages: map[string]string{"https://a.example/faq": twoQuestions("A")}}
	w := &memWriter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(loader, w, h3Source("a")).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, w.calls)
	assert.Empty(t, loader.loaded)
}

func TestPipeline_EndToEndFiles(t *testing.T) {
	dir := t.TempDir()
	loader := &fakeLoader{pages: map[string]string{
		"https://a.example/faq": `<h3>Q1</h3><h3>Q1b?</h3><p>A1</p><h3>Q2?</h3>`,
	}}

	p := newTestPipeline(loader, NewWriter(dir, logger.NewNop()), h3Source("a"))
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)

	var full []model.Record
	readJSON(t, filepath.Join(dir, FullFile), &full)
	require.Len(t, full, 1)
	assert.Equal(t, "Q1 Q1b?", full[0].Question)
	assert.Equal(t, "<p>A1</p>", full[0].Answer)
	assert.Equal(t, model.ComputeIdentity("Q1 Q1b?", "<p>A1</p>", "https://a.example/faq", "Source a"), full[0].Identity)
	assert.FileExists(t, filepath.Join(dir, AnswersDir, full[0].Identity+".json"))
}

func TestNewPipeline_UnknownSource(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sources.Only = []string{"does-not-exist"}
	_, err := NewPipeline(cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewPipeline_Defaults(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()
	cfg.Robots.Respect = true
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	p, err := NewPipeline(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Len(t, p.registry.All(), 13)
	assert.Equal(t, cfg.Output.Dir, p.outputDir)
}
