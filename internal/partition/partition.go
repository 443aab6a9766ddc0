// Package partition groups a flat, ordered sequence of items into
// marker/content pairs. It knows nothing about HTML; adapters supply the
// classification and construction functions.
package partition

// Run is a maximal stretch of consecutive items sharing one classification.
type Run[T any] struct {
	Marker bool
	Items  []T
}

// Pair is two consecutive runs, normally (marker run, content run).
type Pair[T any] struct {
	First  Run[T]
	Second Run[T]
}

// Policy configures Partition.
type Policy[T any] struct {
	// IsMarker classifies an item as question-bearing.
	IsMarker func(T) bool
	// Start is the skip-prefix condition; nil means "first marker item".
	Start func(T) bool
}

// SkipUntil drops leading items until start holds. If it never holds the result is empty.
func SkipUntil[T any](items []T, start func(T) bool) []T {
	for i, it := range items {
		if start(it) {
			return items[i:]
		}
	}
	return nil
}

// Group merges consecutive items with the same classification into runs.
func Group[T any](items []T, isMarker func(T) bool) []Run[T] {
	var runs []Run[T]
	for _, it := range items {
		m := isMarker(it)
		if n := len(runs); n > 0 && runs[n-1].Marker == m {
			runs[n-1].Items = append(runs[n-1].Items, it)
			continue
		}
		runs = append(runs, Run[T]{Marker: m, Items: []T{it}})
	}
	return runs
}

// Pairs takes runs two at a time. A trailing unpaired run is discarded.
func Pairs[T any](runs []Run[T]) []Pair[T] {
	pairs := make([]Pair[T], 0, len(runs)/2)
	for i := 0; i+1 < len(runs); i += 2 {
		pairs = append(pairs, Pair[T]{First: runs[i], Second: runs[i+1]})
	}
	return pairs
}

// Partition runs skip-prefix, grouping and pairing, then calls build for each
// pair. Pairs for which build reports false are dropped.
func Partition[T, E any](items []T, policy Policy[T], build func(marker, content []T) (E, bool)) []E {
	start := policy.Start
	if start == nil {
		start = policy.IsMarker
	}

	var out []E
	for _, p := range Pairs(Group(SkipUntil(items, start), policy.IsMarker)) {
		if e, ok := build(p.First.Items, p.Second.Items); ok {
			out = append(out, e)
		}
	}
	return out
}
