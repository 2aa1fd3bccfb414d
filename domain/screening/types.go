package screening

import (
	"math"

	"ixscreen/domain/core"
)

// Heredity constrains which interactions may be considered based on
// which main effects were already selected.
type Heredity string

const (
	HeredityStrong Heredity = "strong" // both parents must be selected
	HeredityWeak   Heredity = "weak"   // at least one parent must be selected
	HeredityNone   Heredity = "none"   // unconstrained
)

// ParseHeredity validates a heredity mode string
func ParseHeredity(s string) (Heredity, error) {
	switch Heredity(s) {
	case HeredityStrong, HeredityWeak, HeredityNone:
		return Heredity(s), nil
	}
	return "", core.ErrUnknownHeredity
}

// Dataset holds an in-memory design matrix and aligned response.
// X is row-major: X[i][j] is observation i of main effect j.
// Column identity is positional (0..p-1); interaction columns are
// never pre-included.
type Dataset struct {
	X [][]float64
	Y []float64
}

// Rows returns the observation count
func (d Dataset) Rows() int {
	return len(d.X)
}

// Cols returns the main-effect count
func (d Dataset) Cols() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Column copies main-effect column j into a fresh slice
func (d Dataset) Column(j int) []float64 {
	col := make([]float64, len(d.X))
	for i := range d.X {
		col[i] = d.X[i][j]
	}
	return col
}

// Validate checks the fail-fast preconditions shared by every stage:
// presence of both inputs, rectangular X, row alignment with Y, and
// absence of NaN/Inf entries anywhere.
func (d Dataset) Validate() error {
	if len(d.X) == 0 {
		return core.NewMissingInputError("design matrix X")
	}
	if len(d.Y) == 0 {
		return core.NewMissingInputError("response vector y")
	}
	if len(d.X) != len(d.Y) {
		return core.NewShapeMismatchError("X rows != len(y)")
	}
	p := len(d.X[0])
	if p == 0 {
		return core.NewMissingInputError("design matrix X has no columns")
	}
	for i, row := range d.X {
		if len(row) != p {
			return core.NewShapeMismatchError("ragged design matrix")
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return core.NewInvalidValueError("design matrix contains NaN/Inf")
			}
		}
		if math.IsNaN(d.Y[i]) || math.IsInf(d.Y[i], 0) {
			return core.NewInvalidValueError("response contains NaN/Inf")
		}
	}
	return nil
}

// ScreeningResult is the output of the dependence screening stage.
type ScreeningResult struct {
	// Ranked is a permutation of column indices, most to least dependent.
	Ranked []int `json:"ranked"`
	// Top holds the first min(p, nsis) entries of Ranked.
	Top []int `json:"top"`
	// Scores holds raw per-column distance correlations in original
	// column order.
	Scores []float64 `json:"scores"`
}

// RankedInteraction pairs a candidate interaction's absolute variable
// index (main count + table position) with its criterion score.
// Score may be NaN; NaN rows sort after all defined scores.
type RankedInteraction struct {
	VariableIndex int     `json:"variable_index"`
	Pair          Pair    `json:"pair"`
	Score         float64 `json:"score"`
}

// Selection is the structured result of the full pipeline.
type Selection struct {
	// Ranking is every scored candidate, ascending by score, NaN last.
	Ranking []RankedInteraction `json:"ranking"`
	// SelectedMains is the top-r1 screened main effects.
	SelectedMains []int `json:"selected_mains"`
	// MainPool is the full main-effect ranking order.
	MainPool []int `json:"main_pool"`
	// SelectedInteractions is the top-r2 slice of Ranking.
	SelectedInteractions []RankedInteraction `json:"selected_interactions"`
}
