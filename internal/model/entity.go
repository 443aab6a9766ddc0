package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Run carries values fixed for the whole harvest run.
type Run struct {
	CapturedAt time.Time
}

// NewRun captures the run timestamp once.
func NewRun(now time.Time) Run {
	return Run{CapturedAt: now.UTC().Truncate(time.Second)}
}

// Entity is a normalized question/answer pair with provenance.
// Fields are unexported so Identity can never drift from the content it hashes.
type Entity struct {
	question   string
	answer     string
	source     string
	sourceURL  string
	capturedAt time.Time
	identity   string
}

// NewEntity builds an Entity and computes its identity
func NewEntity(question, answer, source, sourceURL string, run Run) Entity {
	return Entity{
		question:   question,
		answer:     answer,
		source:     source,
		sourceURL:  sourceURL,
		capturedAt: run.CapturedAt,
		identity:   ComputeIdentity(question, answer, sourceURL, source),
	}
}

// Question returns the question text, which may carry inline markup.
func (e Entity) Question() string { return e.question }

// Answer returns the sanitized answer HTML fragment.
func (e Entity) Answer() string { return e.answer }

// Source returns the display name of the adapter that produced the entity.
func (e Entity) Source() string { return e.source }

// SourceURL returns the page the entity was extracted from.
func (e Entity) SourceURL() string { return e.sourceURL }

// CapturedAt returns the run timestamp shared by every entity of a run.
func (e Entity) CapturedAt() time.Time { return e.capturedAt }

// Identity returns the hex SHA-256 fingerprint of question, answer, URL and source.
func (e Entity) Identity() string { return e.identity }

// Record returns the full serialized form of the entity.
func (e Entity) Record() Record {
	return Record{
		Question:   e.question,
		Answer:     e.answer,
		Source:     e.source,
		SourceURL:  e.sourceURL,
		CapturedAt: e.capturedAt,
		Identity:   e.identity,
	}
}

// IndexEntry returns the lightweight listing form of the entity.
func (e Entity) IndexEntry() IndexEntry {
	return IndexEntry{
		Question: e.question,
		Identity: e.identity,
		Source:   e.source,
	}
}

// Record is the on-disk form written to faq.json and answers/<identity>.json
type Record struct {
	Question   string    `json:"q"`
	Answer     string    `json:"r"`
	Source     string    `json:"s"`
	SourceURL  string    `json:"u"`
	CapturedAt time.Time `json:"m"`
	Identity   string    `json:"i"`
}

// IndexEntry is the on-disk form written to faq-questions.json
type IndexEntry struct {
	Question string `json:"q"`
	Identity string `json:"i"`
	Source   string `json:"s"`
}

// ComputeIdentity returns the hex-encoded SHA-256 of the concatenated fields.
func ComputeIdentity(question, answer, sourceURL, source string) string {
	h := sha256.New()
	h.Write([]byte(question))
	h.Write([]byte(answer))
	h.Write([]byte(sourceURL))
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}
