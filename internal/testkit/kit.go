package testkit

import (
	"context"
	"math"
	"math/rand"

	"ixscreen/domain/screening"
	"ixscreen/ports"
)

// InteractionDataset generates a synthetic regression dataset with a
// known two-way interaction: y = 1 + x0 + x1 + x0*x1 + noise. Columns
// beyond the first two are independent noise, so screening should
// surface columns 0 and 1 and ranking should surface the (0, 1) pair.
func InteractionDataset(n, p int, seed int64) screening.Dataset {
	rng := rand.New(rand.NewSource(seed))

	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, p)
		for j := 0; j < p; j++ {
			row[j] = rng.NormFloat64()
		}
		x[i] = row
		y[i] = 1 + row[0] + row[1] + row[0]*row[1] + 0.1*rng.NormFloat64()
	}
	return screening.Dataset{X: x, Y: y}
}

// NearConstantDataset mimics low-information predictors: every column
// is a constant plus small noise, with the response still driven by
// the first two columns and their product.
func NearConstantDataset(n, p int, seed int64) screening.Dataset {
	rng := rand.New(rand.NewSource(seed))

	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, p)
		for j := 0; j < p; j++ {
			row[j] = 5 + rng.NormFloat64()
		}
		x[i] = row
		y[i] = 1 + row[0] + row[1] + row[0]*row[1] + 0.05*rng.NormFloat64()
	}
	return screening.Dataset{X: x, Y: y}
}

// FakeScorer scores candidates from a fixed pair -> score map; pairs
// absent from the map score NaN. Deterministic and side-effect free,
// which is all the ranker requires.
type FakeScorer struct {
	Scores map[screening.Pair]float64
}

func (f *FakeScorer) Score(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
	sigma *float64, extraction bool, variables []int,
	table *screening.InteractionTable, params ports.ScoreParams) float64 {

	for _, v := range variables {
		if v >= data.Cols() {
			if pr, ok := table.PairAt(v - data.Cols()); ok {
				if s, ok := f.Scores[pr.Canonical()]; ok {
					return s
				}
			}
		}
	}
	return math.NaN()
}

// NoopRenderer satisfies the chart port and records what it was
// handed.
type NoopRenderer struct {
	Rendered [][]screening.RankedInteraction
}

func (r *NoopRenderer) Render(ctx context.Context, ranking []screening.RankedInteraction, table *screening.InteractionTable) error {
	rows := make([]screening.RankedInteraction, len(ranking))
	copy(rows, ranking)
	r.Rendered = append(r.Rendered, rows)
	return nil
}
