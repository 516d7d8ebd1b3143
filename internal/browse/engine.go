// Package browse filters and pages the loaded conversation summaries.
package browse

import (
	"math"

	"github.com/Zuo-Peng/ttsb/internal/manifest"
)

// DefaultPageSize is the number of conversations shown per page.
const DefaultPageSize = 25

// Criteria bounds the visible conversations. All bounds are inclusive.
type Criteria struct {
	MinTurns    int
	MaxTurns    int
	MinDuration float64
	MaxDuration float64
}

// Match reports whether s satisfies both range checks.
func (c Criteria) Match(s manifest.Summary) bool {
	return c.MinTurns <= s.NumTurns && s.NumTurns <= c.MaxTurns &&
		c.MinDuration <= s.TotalDuration && s.TotalDuration <= c.MaxDuration
}

// PageRequest selects a page; Size <= 0 means DefaultPageSize.
type PageRequest struct {
	Index int // zero-based
	Size  int
}

// Page is one window of a filtered sequence.
type Page struct {
	Items      []manifest.Summary
	Index      int // after clamping
	TotalPages int
	Matches    int // length of the filtered sequence
}

// Filter returns the summaries matching c, in their original order.
func Filter(summaries []manifest.Summary, c Criteria) []manifest.Summary {
	out := make([]manifest.Summary, 0)
	for _, s := range summaries {
		if c.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Paginate slices one page out of filtered. An out-of-range index is clamped
// to the nearest valid page instead of producing an empty page.
func Paginate(filtered []manifest.Summary, req PageRequest) Page {
	size := req.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	total := int(math.Ceil(float64(len(filtered)) / float64(size)))
	if total < 1 {
		total = 1
	}

	idx := req.Index
	if idx >= total {
		idx = total - 1
	}
	if idx < 0 {
		idx = 0
	}

	start := idx * size
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	if start > end {
		start = end
	}

	return Page{
		Items:      filtered[start:end],
		Index:      idx,
		TotalPages: total,
		Matches:    len(filtered),
	}
}

// BoundsOf returns criteria spanning the whole collection: exact turn-count
// range and the duration range widened to whole seconds.
func BoundsOf(summaries []manifest.Summary) Criteria {
	if len(summaries) == 0 {
		return Criteria{}
	}
	c := Criteria{
		MinTurns:    summaries[0].NumTurns,
		MaxTurns:    summaries[0].NumTurns,
		MinDuration: summaries[0].TotalDuration,
		MaxDuration: summaries[0].TotalDuration,
	}
	for _, s := range summaries[1:] {
		c.MinTurns = min(c.MinTurns, s.NumTurns)
		c.MaxTurns = max(c.MaxTurns, s.NumTurns)
		c.MinDuration = math.Min(c.MinDuration, s.TotalDuration)
		c.MaxDuration = math.Max(c.MaxDuration, s.TotalDuration)
	}
	c.MinDuration = math.Floor(c.MinDuration)
	c.MaxDuration = math.Ceil(c.MaxDuration)
	return c
}
