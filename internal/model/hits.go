package model

import "sort"

// MarkerHits maps a marker to its occurrence count.
// Absent markers mean zero; zero-valued entries are never stored.
type MarkerHits map[string]int

// Add increments a marker count, ignoring non-positive deltas
func (h MarkerHits) Add(marker string, count int) {
	if count <= 0 {
		return
	}
	h[marker] += count
}

// Total sums all marker counts
func (h MarkerHits) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Clone returns an independent copy, never nil
func (h MarkerHits) Clone() MarkerHits {
	out := make(MarkerHits, len(h))
	for k, v := range h {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// MarkerCount is a single entry of a ranked hit list
type MarkerCount struct {
	Marker string
	Count  int
}

// Ranked returns hits ordered by count (descending), then marker name
func (h MarkerHits) Ranked() []MarkerCount {
	out := make([]MarkerCount, 0, len(h))
	for k, v := range h {
		out = append(out, MarkerCount{Marker: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Marker < out[j].Marker
	})
	return out
}
