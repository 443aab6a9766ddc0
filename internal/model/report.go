package model

import "time"

// Report summarizes one harvest run. It is printed by the CLI and never persisted.
type Report struct {
	CapturedAt time.Time      `json:"captured_at"`
	Sources    []SourceReport `json:"sources"`
	Total      int            `json:"total"`
	OutputDir  string         `json:"output_dir,omitempty"`
	Rotated    int            `json:"rotated"` // per-entity files moved to answers/outdated
}

// SourceReport holds the outcome for a single adapter
type SourceReport struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Entities int           `json:"entities"`
	Failed   bool          `json:"failed"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Failures returns the number of sources that produced no data due to an error.
func (r *Report) Failures() int {
	n := 0
	for _, s := range r.Sources {
		if s.Failed {
			n++
		}
	}
	return n
}
