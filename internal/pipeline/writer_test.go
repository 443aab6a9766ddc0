package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(q, a, source string) model.Entity {
	run := model.NewRun(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	return model.NewEntity(q, a, source, "https://src.example/faq", run)
}

func TestAggregate_OrderAndDedup(t *testing.T) {
	a1 := entity("A1?", "<p>x</p>", "A")
	a2 := entity("A2?", "<p>y</p>", "A")
	b1 := entity("B1?", "<p>z</p>", "B")
	dup := entity("A1?", "<p>x</p>", "A")

	records, index := Aggregate([][]model.Entity{{a1, a2}, nil, {b1, dup}})
	require.Len(t, records, 3)
	require.Len(t, index, 3)
	assert.Equal(t, []string{"A1?", "A2?", "B1?"}, []string{records[0].Question, records[1].Question, records[2].Question})
	assert.Equal(t, records[2].Identity, index[2].Identity)
	assert.Equal(t, "B", index[2].Source)
}

func TestAggregate_Empty(t *testing.T) {
	records, index := Aggregate(nil)
	assert.NotNil(t, records)
	assert.NotNil(t, index)
	assert.Empty(t, records)
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestWriter_WritesFileSet(t *testing.T) {
	dir := t.TempDir()
	e := entity("Is it <b>free</b>?", `<p>Yes & <a href="https://x.example">more</a></p>`, "Ministry")
	records, index := Aggregate([][]model.Entity{{e}})

	rotated, err := NewWriter(dir, logger.NewNop()).Write(records, index)
	require.NoError(t, err)
	assert.Equal(t, 0, rotated)

	var full []model.Record
	readJSON(t, filepath.Join(dir, FullFile), &full)
	require.Len(t, full, 1)
	assert.Equal(t, records[0], full[0])

	var idx []model.IndexEntry
	readJSON(t, filepath.Join(dir, IndexFile), &idx)
	assert.Equal(t, index, idx)

	var single model.Record
	readJSON(t, filepath.Join(dir, AnswersDir, e.Identity()+".json"), &single)
	assert.Equal(t, records[0], single)

	raw, err := os.ReadFile(filepath.Join(dir, FullFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"q": "Is it <b>free</b>?"`, "pretty-printed without HTML escaping")
}

func TestWriter_RotatesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, logger.NewNop())

	old := entity("Old?", "<p>old</p>", "A")
	kept := entity("Kept?", "<p>kept</p>", "A")
	records, index := Aggregate([][]model.Entity{{old, kept}})
	_, err := w.Write(records, index)
	require.NoError(t, err)

	records, index = Aggregate([][]model.Entity{{kept}})
	rotated, err := w.Write(records, index)
	require.NoError(t, err)
	assert.Equal(t, 2, rotated)

	answers := filepath.Join(dir, AnswersDir)
	assert.FileExists(t, filepath.Join(answers, kept.Identity()+".json"))
	assert.NoFileExists(t, filepath.Join(answers, old.Identity()+".json"))
	assert.FileExists(t, filepath.Join(answers, OutdatedDir, old.Identity()+".json"))
	assert.FileExists(t, filepath.Join(answers, OutdatedDir, kept.Identity()+".json"))

	var full []model.Record
	readJSON(t, filepath.Join(dir, FullFile), &full)
	assert.Len(t, full, 1)
}
