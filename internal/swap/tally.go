package swap

import "sort"

// StationCount is one line of the frequency table.
type StationCount struct {
	Name  string
	Count int
}

// Tally is the frequency table of station names for one analysis run.
// Names are compared as exact strings.
type Tally struct {
	counts map[string]int
	order  []string
	total  int
}

// NewTally returns an empty Tally
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add records one occurrence of each name
func (t *Tally) Add(names ...string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	for _, name := range names {
		if _, seen := t.counts[name]; !seen {
			t.order = append(t.order, name)
		}
		t.counts[name]++
		t.total++
	}
}

// Total returns the number of occurrences recorded across all names
func (t *Tally) Total() int {
	return t.total
}

// Count returns the occurrences recorded for name
func (t *Tally) Count(name string) int {
	return t.counts[name]
}

// Len returns the number of distinct names
func (t *Tally) Len() int {
	return len(t.order)
}

// Ranked returns every name by descending count. Names with equal counts
// keep the order in which they were first added.
func (t *Tally) Ranked() []StationCount {
	ranked := make([]StationCount, len(t.order))
	for i, name := range t.order {
		ranked[i] = StationCount{Name: name, Count: t.counts[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Frequent returns the ranked names seen at least min times
func (t *Tally) Frequent(min int) []StationCount {
	var frequent []StationCount
	for _, sc := range t.Ranked() {
		if sc.Count >= min {
			frequent = append(frequent, sc)
		}
	}
	return frequent
}
