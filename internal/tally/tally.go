package tally

import (
	"fmt"
	"sort"
	"strings"
)

// NoDataError signals that a label sequence produced zero countable
// entries; callers must not hand an empty table to the renderer.
type NoDataError struct{}

func (e *NoDataError) Error() string { return "no valid data to render" }

// Pair is one (label, count) entry as consumed by the renderer.
type Pair struct {
	Label string
	Count int
}

// Table is an immutable frequency table built from one label sequence.
// Labels are counted verbatim; no canonicalization of region name variants
// is attempted here.
type Table struct {
	counts map[string]int
	total  int
}

// Count tallies the sequence in a single pass. An empty sequence yields a
// NoDataError instead of a degenerate table.
func Count(labels []string) (*Table, error) {
	if len(labels) == 0 {
		return nil, &NoDataError{}
	}
	t := &Table{counts: make(map[string]int, len(labels))}
	for _, l := range labels {
		t.counts[l]++
		t.total++
	}
	return t, nil
}

// Total returns the number of labels counted.
func (t *Table) Total() int { return t.total }

// Distinct returns the number of distinct labels.
func (t *Table) Distinct() int { return len(t.counts) }

// Count returns the occurrence count for one label, zero if absent.
func (t *Table) Count(label string) int { return t.counts[label] }

// Pairs returns all entries sorted by count descending, then label
// ascending. The renderer does not depend on pair order; sorting keeps
// output deterministic.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.counts))
	for k, v := range t.counts {
		out = append(out, Pair{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// ScaleBound returns the maximum count across all labels. Presentation
// margins on top of it belong to the chart layer.
func (t *Table) ScaleBound() int {
	max := 0
	for _, v := range t.counts {
		if v > max {
			max = v
		}
	}
	return max
}

// Summary renders a compact text report of the table. topN limits the
// listed values; <=0 lists everything.
func (t *Table) Summary(name string, topN int) string {
	var b strings.Builder
	b.WriteString("[TALLY SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	b.WriteString(fmt.Sprintf("Labels: %d (distinct %d)\n", t.total, len(t.counts)))
	b.WriteString(fmt.Sprintf("Max count: %d\n", t.ScaleBound()))

	pairs := t.Pairs()
	shown := len(pairs)
	if topN > 0 && topN < shown {
		shown = topN
	}
	b.WriteString("\n[TOP VALUES]\n")
	for _, p := range pairs[:shown] {
		b.WriteString(fmt.Sprintf("- %s: %d\n", p.Label, p.Count))
	}
	if shown < len(pairs) {
		b.WriteString(fmt.Sprintf("… and %d more\n", len(pairs)-shown))
	}
	return b.String()
}
