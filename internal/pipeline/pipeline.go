package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ppiankov/faqharvest/internal/cache"
	"github.com/ppiankov/faqharvest/internal/extract/adapters"
	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/ppiankov/faqharvest/internal/util"
	"github.com/ppiankov/faqharvest/internal/worker"
)

// DocumentLoader loads documents for adapters
type DocumentLoader interface {
	Load(ctx context.Context, rawURL string) LoadResult
	LoadFile(path, canonicalURL string) LoadResult
}

// DatasetWriter persists the aggregated dataset
type DatasetWriter interface {
	Write(records []model.Record, index []model.IndexEntry) (int, error)
}

// Pipeline runs every adapter in order and writes the dataset
type Pipeline struct {
	loader    DocumentLoader
	registry  *adapters.Registry
	writer    DatasetWriter
	pinnedDir string
	outputDir string
	log       logger.Logger
	now       func() time.Time
}

// New assembles a Pipeline from its collaborators
func New(loader DocumentLoader, registry *adapters.Registry, writer DatasetWriter, pinnedDir string, log logger.Logger) *Pipeline {
	return &Pipeline{
		loader:    loader,
		registry:  registry,
		writer:    writer,
		pinnedDir: pinnedDir,
		log:       log,
		now:       time.Now,
	}
}

// NewPipeline builds the production pipeline from configuration
func NewPipeline(cfg *model.Config, log logger.Logger) (*Pipeline, error) {
	registry, err := adapters.NewRegistry().Filter(cfg.Sources.Only)
	if err != nil {
		return nil, err
	}

	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	).WithMaxAttempts(cfg.HTTP.MaxAttempts)

	if cfg.RateLimiting.RequestsPerSecond > 0 {
		fetcher.WithLimiter(worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize))
	}
	if cfg.Robots.Respect {
		fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, 30*time.Second))
	}
	if cfg.Cache.Enabled {
		fetcher.WithCache(cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL))
	}

	writer := NewWriter(cfg.Output.Dir, log)
	p := New(NewLoader(fetcher, log), registry, writer, cfg.Sources.PinnedDir, log)
	p.outputDir = writer.Dir()
	return p, nil
}

// Run captures the run timestamp, harvests every source and writes the
// dataset. Nothing is written if ctx is cancelled before harvesting ends.
func (p *Pipeline) Run(ctx context.Context) (*model.Report, error) {
	run := model.NewRun(p.now())

	seqs, report := p.Harvest(ctx, run)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("harvest interrupted: %w", err)
	}

	records, index := Aggregate(seqs)
	report.Total = len(records)
	report.OutputDir = p.outputDir

	rotated, err := p.writer.Write(records, index)
	report.Rotated = rotated
	if err != nil {
		return report, fmt.Errorf("write dataset: %w", err)
	}
	return report, nil
}

// Harvest runs every adapter sequentially. A failing adapter contributes an
// empty sequence; the others are unaffected.
func (p *Pipeline) Harvest(ctx context.Context, run model.Run) ([][]model.Entity, *model.Report) {
	report := &model.Report{CapturedAt: run.CapturedAt}
	seqs := make([][]model.Entity, 0, len(p.registry.All()))

	for _, d := range p.registry.All() {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		entities, err := p.harvestSource(ctx, d, run)

		sr := model.SourceReport{ID: d.ID, Name: d.Name, Entities: len(entities), Elapsed: time.Since(start)}
		if err != nil {
			sr.Failed = true
			sr.Error = err.Error()
			entities = nil
			p.log.Warn("source skipped", logger.String("source", d.ID), logger.Error(err))
		} else {
			p.log.Info("source harvested", logger.String("source", d.ID), logger.Int("entities", len(entities)))
		}

		report.Sources = append(report.Sources, sr)
		seqs = append(seqs, entities)
	}
	return seqs, report
}

// harvestSource is the isolation boundary for one adapter: load failures,
// extraction errors and panics all become an error for that source only.
func (p *Pipeline) harvestSource(ctx context.Context, d *adapters.Descriptor, run model.Run) (entities []model.Entity, err error) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			err = fmt.Errorf("adapter %s panicked: %v", d.ID, r)
		}
	}()

	for _, doc := range p.documents(ctx, d) {
		if !doc.OK() {
			if doc.Err != nil {
				return nil, doc.Err
			}
			return nil, ErrNoDocument
		}

		found, err := d.Harvest(doc.Doc.Root, doc.Doc.URL, run)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", doc.Doc.URL, err)
		}
		entities = append(entities, found...)
	}
	return entities, nil
}

// documents loads the pages of d in order, stopping at the first failure.
func (p *Pipeline) documents(ctx context.Context, d *adapters.Descriptor) []LoadResult {
	if d.PinnedFile != "" {
		return []LoadResult{p.loader.LoadFile(filepath.Join(p.pinnedDir, d.PinnedFile), d.URLs[0])}
	}

	results := make([]LoadResult, 0, len(d.URLs))
	for _, u := range d.URLs {
		res := p.loader.Load(ctx, u)
		results = append(results, res)
		if !res.OK() {
			break
		}
	}
	return results
}
