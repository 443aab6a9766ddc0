package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIdentity_Deterministic(t *testing.T) {
	a := ComputeIdentity("Q?", "<p>A</p>", "https://a.example/faq", "Ministry")
	b := ComputeIdentity("Q?", "<p>A</p>", "https://a.example/faq", "Ministry")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		ComputeIdentity("a", "b", "c", ""))
}

func TestComputeIdentity_Distinct(t *testing.T) {
	base := ComputeIdentity("Q?", "A", "https://a.example", "S")
	variants := []string{
		ComputeIdentity("Q2?", "A", "https://a.example", "S"),
		ComputeIdentity("Q?", "A2", "https://a.example", "S"),
		ComputeIdentity("Q?", "A", "https://b.example", "S"),
		ComputeIdentity("Q?", "A", "https://a.example", "S2"),
	}
	for _, v := range variants {
		assert.NotEqual(t, base, v)
	}
}

func TestNewEntity_IdentityIgnoresTimestamp(t *testing.T) {
	r1 := NewRun(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	r2 := NewRun(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	e1 := NewEntity("Q?", "A", "S", "https://a.example", r1)
	e2 := NewEntity("Q?", "A", "S", "https://a.example", r2)

	assert.Equal(t, e1.Identity(), e2.Identity())
	assert.Equal(t, r1.CapturedAt, e1.CapturedAt())
}

func TestRecord_JSONKeys(t *testing.T) {
	run := NewRun(time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC))
	e := NewEntity("Q?", "<p>A</p>", "Ministry", "https://a.example/faq", run)

	data, err := json.Marshal(e.Record())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Q?", raw["q"])
	assert.Equal(t, "<p>A</p>", raw["r"])
	assert.Equal(t, "Ministry", raw["s"])
	assert.Equal(t, "https://a.example/faq", raw["u"])
	assert.Equal(t, "2024-03-05T08:30:00Z", raw["m"])
	assert.Equal(t, e.Identity(), raw["i"])

	idx := e.IndexEntry()
	assert.Equal(t, IndexEntry{Question: "Q?", Identity: e.Identity(), Source: "Ministry"}, idx)
}

func TestNewRun_TruncatesToUTCSeconds(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	run := NewRun(time.Date(2024, 1, 1, 12, 0, 0, 999, loc))
	assert.Equal(t, time.UTC, run.CapturedAt.Location())
	assert.Equal(t, 0, run.CapturedAt.Nanosecond())
	assert.Equal(t, 11, run.CapturedAt.Hour())
}
