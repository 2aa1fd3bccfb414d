package ports

import (
	"context"

	"ixscreen/domain/screening"
)

// ScoreParams carries the criterion's tuning constants. They are
// forwarded untouched to the scorer; the pipeline never reads them.
type ScoreParams struct {
	Pi1    float64 `json:"pi1"`    // prior weight for main effects
	Pi2    float64 `json:"pi2"`    // prior weight for quadratic effects
	Pi3    float64 `json:"pi3"`    // prior weight for interaction effects
	Lambda float64 `json:"lambda"` // penalty scale
	Q      float64 `json:"q"`      // model-size tuning constant
}

// SubsetScorer evaluates a candidate variable subset against (X, y)
// and returns a scalar fitness; lower is better. Variables is a mix of
// main-effect indices (< p) and at most one interaction variable index
// (>= p, resolved through the table). A nil sigma asks the scorer to
// estimate the noise scale internally (RMSE-based, per its own
// contract). NaN is a legitimate result and is never treated as an
// error by callers.
//
// Implementations must be side-effect-free and safe for concurrent
// use: the ranker invokes Score once per candidate, possibly in
// parallel.
type SubsetScorer interface {
	Score(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
		sigma *float64, extraction bool, variables []int,
		table *screening.InteractionTable, params ScoreParams) float64
}

// SubsetScorerFunc adapts a plain function to the SubsetScorer interface
type SubsetScorerFunc func(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
	sigma *float64, extraction bool, variables []int,
	table *screening.InteractionTable, params ScoreParams) float64

func (f SubsetScorerFunc) Score(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
	sigma *float64, extraction bool, variables []int,
	table *screening.InteractionTable, params ScoreParams) float64 {
	return f(ctx, data, heredity, sigma, extraction, variables, table, params)
}
