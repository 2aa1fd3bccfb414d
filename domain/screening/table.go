package screening

import (
	"fmt"

	"ixscreen/domain/core"
)

// Pair is an unordered pair of main-effect indices stored canonically
// with I < J.
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Canonical returns the pair with its indices ordered I < J.
func (p Pair) Canonical() Pair {
	if p.I > p.J {
		return Pair{I: p.J, J: p.I}
	}
	return p
}

// InteractionTable is the single source of truth mapping a pair of
// main-effect indices to a flat variable index. Positions follow
// combinatorial generation order: pairs (i, j) with i < j, increasing
// i then increasing j. The interaction variable index is
// mains + position.
type InteractionTable struct {
	mains int
	pairs []Pair
	pos   map[Pair]int
}

// NewInteractionTable enumerates all C(p, 2) pairs of main-effect
// indices in canonical order.
func NewInteractionTable(p int) *InteractionTable {
	pairs := make([]Pair, 0, p*(p-1)/2)
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	t := &InteractionTable{mains: p, pairs: pairs, pos: make(map[Pair]int, len(pairs))}
	for k, pr := range pairs {
		t.pos[pr] = k
	}
	return t
}

// TableFromPairs builds a table from caller-supplied rows, validating
// each row against the main-effect count.
func TableFromPairs(p int, pairs []Pair) (*InteractionTable, error) {
	t := &InteractionTable{mains: p, pairs: make([]Pair, 0, len(pairs)), pos: make(map[Pair]int, len(pairs))}
	for _, pr := range pairs {
		c := pr.Canonical()
		if c.I < 0 || c.J >= p || c.I == c.J {
			return nil, core.NewInvalidValueError(fmt.Sprintf("pair (%d, %d) out of range for %d mains", pr.I, pr.J, p))
		}
		if _, dup := t.pos[c]; dup {
			return nil, core.NewInvalidValueError(fmt.Sprintf("duplicate pair (%d, %d)", c.I, c.J))
		}
		t.pos[c] = len(t.pairs)
		t.pairs = append(t.pairs, c)
	}
	return t, nil
}

// Mains returns the main-effect count the table was built against
func (t *InteractionTable) Mains() int {
	return t.mains
}

// Len returns the number of table rows
func (t *InteractionTable) Len() int {
	return len(t.pairs)
}

// Pairs returns a copy of the table rows in position order
func (t *InteractionTable) Pairs() []Pair {
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Position locates a pair's row in the table
func (t *InteractionTable) Position(pr Pair) (int, bool) {
	k, ok := t.pos[pr.Canonical()]
	return k, ok
}

// VariableIndex maps a pair to its absolute variable index
// (mains + position). A pair absent from the table is a consistency
// error: the caller passed an inconsistent table/main-count combination.
func (t *InteractionTable) VariableIndex(pr Pair) (int, error) {
	k, ok := t.Position(pr)
	if !ok {
		return 0, core.NewInconsistentPairError(pr.I, pr.J)
	}
	return t.mains + k, nil
}

// PairAt returns the table row at a given position
func (t *InteractionTable) PairAt(position int) (Pair, bool) {
	if position < 0 || position >= len(t.pairs) {
		return Pair{}, false
	}
	return t.pairs[position], true
}
