package pipeline

import "github.com/ppiankov/faqharvest/internal/model"

// Aggregate concatenates per-source entity sequences in order and derives the
// full and index records. Later entities whose identity was already seen are dropped.
func Aggregate(seqs [][]model.Entity) ([]model.Record, []model.IndexEntry) {
	records := make([]model.Record, 0)
	index := make([]model.IndexEntry, 0)
	seen := make(map[string]bool)

	for _, seq := range seqs {
		for _, e := range seq {
			if seen[e.Identity()] {
				continue
			}
			seen[e.Identity()] = true
			records = append(records, e.Record())
			index = append(index, e.IndexEntry())
		}
	}
	return records, index
}
