package screening

import (
	"sort"

	"ixscreen/domain/core"
)

// Candidates builds the pool of two-way interactions eligible for
// scoring under the given heredity mode. The pool is always a subset
// of the table's rows and is rebuilt fresh on every call.
//
// Strong: all C(r1, 2) pairs formed from the selected mains themselves.
// Weak: table rows with at least one selected parent; first-column
// matches are assembled before second-column matches, then de-duplicated.
// None: the entire table, unfiltered.
//
// An empty pool (e.g. strong heredity with fewer than two selected
// mains) is valid and flows through downstream ranking unchanged.
func Candidates(table *InteractionTable, selectedMains []int, mode Heredity) ([]Pair, error) {
	if table == nil {
		return nil, core.ErrMissingTable
	}

	switch mode {
	case HeredityNone:
		return table.Pairs(), nil
	case HeredityStrong:
		return strongCandidates(selectedMains), nil
	case HeredityWeak:
		return weakCandidates(table, selectedMains), nil
	}
	return nil, core.ErrUnknownHeredity
}

// strongCandidates rebuilds the combination set from the sorted
// selection; both parents of every candidate are selected.
func strongCandidates(selectedMains []int) []Pair {
	sel := make([]int, len(selectedMains))
	copy(sel, selectedMains)
	sort.Ints(sel)

	pairs := make([]Pair, 0, len(sel)*(len(sel)-1)/2)
	for a := 0; a < len(sel); a++ {
		for b := a + 1; b < len(sel); b++ {
			if sel[a] == sel[b] {
				continue
			}
			pairs = append(pairs, Pair{I: sel[a], J: sel[b]})
		}
	}
	return pairs
}

// weakCandidates collects table rows whose first or second index is
// selected. Assembly order matches the selection against the first
// column, then the second; duplicates are dropped after concatenation.
func weakCandidates(table *InteractionTable, selectedMains []int) []Pair {
	seen := make(map[Pair]bool)
	out := make([]Pair, 0)

	rows := table.Pairs()
	for _, s := range selectedMains {
		for _, pr := range rows {
			if pr.I == s && !seen[pr] {
				seen[pr] = true
				out = append(out, pr)
			}
		}
	}
	for _, s := range selectedMains {
		for _, pr := range rows {
			if pr.J == s && !seen[pr] {
				seen[pr] = true
				out = append(out, pr)
			}
		}
	}
	return out
}
