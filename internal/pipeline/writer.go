package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/model"
)

const (
	// FullFile holds every record.
	FullFile = "faq.json"
	// IndexFile holds the question index.
	IndexFile = "faq-questions.json"
	// AnswersDir holds one file per record, named by identity.
	AnswersDir = "answers"
	// OutdatedDir receives the previous run's per-record files.
	OutdatedDir = "outdated"
)

// Writer emits the dataset file set into a root directory
type Writer struct {
	dir string
	log logger.Logger
}

// NewWriter creates a Writer rooted at dir
func NewWriter(dir string, log logger.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// Dir returns the output root
func (w *Writer) Dir() string {
	return w.dir
}

// Write rotates the previous per-record files into answers/outdated and then
// writes the full file, the index file and one file per record. It returns
// the number of rotated files.
func (w *Writer) Write(records []model.Record, index []model.IndexEntry) (int, error) {
	answers := filepath.Join(w.dir, AnswersDir)
	outdated := filepath.Join(answers, OutdatedDir)

	if err := os.MkdirAll(outdated, 0755); err != nil {
		return 0, fmt.Errorf("create output directories: %w", err)
	}

	rotated, err := rotate(answers, outdated)
	if err != nil {
		return rotated, err
	}

	if err := writeJSON(filepath.Join(w.dir, FullFile), records); err != nil {
		return rotated, err
	}
	if err := writeJSON(filepath.Join(w.dir, IndexFile), index); err != nil {
		return rotated, err
	}
	for _, r := range records {
		if err := writeJSON(filepath.Join(answers, r.Identity+".json"), r); err != nil {
			return rotated, err
		}
	}

	w.log.Info("dataset written",
		logger.String("dir", w.dir),
		logger.Int("records", len(records)),
		logger.Int("rotated", rotated),
	)
	return rotated, nil
}

// rotate moves every *.json file directly under from into to.
func rotate(from, to string) (int, error) {
	entries, err := os.ReadDir(from)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", from, err)
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Rename(filepath.Join(from, e.Name()), filepath.Join(to, e.Name())); err != nil {
			return moved, fmt.Errorf("rotate %s: %w", e.Name(), err)
		}
		moved++
	}
	return moved, nil
}

// writeJSON writes v pretty-printed without escaping HTML characters.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
