package dcor

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"ixscreen/domain/core"
	"ixscreen/domain/screening"
	"ixscreen/internal/testkit"
)

func TestScreen_Deterministic(t *testing.T) {
	data := testkit.InteractionDataset(60, 6, 42)
	s := NewScreener()
	ctx := context.Background()

	first, err := s.Screen(ctx, data, 0)
	if err != nil {
		t.Fatalf("first screen: %v", err)
	}
	second, err := s.Screen(ctx, data, 0)
	if err != nil {
		t.Fatalf("second screen: %v", err)
	}

	for j := range first.Scores {
		if first.Scores[j] != second.Scores[j] {
			t.Errorf("score %d differs across calls: %v vs %v", j, first.Scores[j], second.Scores[j])
		}
	}
	for j := range first.Ranked {
		if first.Ranked[j] != second.Ranked[j] {
			t.Errorf("ranking position %d differs across calls", j)
		}
	}
}

func TestScreen_SizeBound(t *testing.T) {
	ctx := context.Background()
	s := NewScreener()

	data := testkit.InteractionDataset(50, 10, 1)
	result, err := s.Screen(ctx, data, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Top) != 3 {
		t.Errorf("expected 3 kept columns, got %d", len(result.Top))
	}

	// Default n/log(n) = 12 for n=50, capped at p.
	result, err = s.Screen(ctx, data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Top) != 10 {
		t.Errorf("expected all 10 columns kept under the default, got %d", len(result.Top))
	}

	// nsis beyond p is also capped.
	result, err = s.Screen(ctx, data, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Top) != 10 {
		t.Errorf("expected cap at p=10, got %d", len(result.Top))
	}
}

func TestScreen_DependentColumnRanksFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 80
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		x[i] = row
		y[i] = row[0] * row[0] // nonlinear, nonmonotonic dependence on column 0
	}

	result, err := NewScreener().Screen(context.Background(), screening.Dataset{X: x, Y: y}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ranked[0] != 0 {
		t.Errorf("expected column 0 to rank first, got ranking %v with scores %v", result.Ranked, result.Scores)
	}
	if result.Scores[0] <= result.Scores[1] || result.Scores[0] <= result.Scores[2] {
		t.Errorf("expected column 0 score to dominate: %v", result.Scores)
	}
}

func TestScreen_ConstantColumnScoresZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 40
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{1.5, rng.NormFloat64()}
		y[i] = x[i][1]
	}

	result, err := NewScreener().Screen(context.Background(), screening.Dataset{X: x, Y: y}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Scores[0] != 0 {
		t.Errorf("expected zero score for a constant column, got %v", result.Scores[0])
	}
	if result.Ranked[0] != 1 {
		t.Errorf("expected the informative column to rank first, got %v", result.Ranked)
	}
}

func TestScreen_ShapeMismatch(t *testing.T) {
	x := make([][]float64, 10)
	for i := range x {
		x[i] = []float64{float64(i), float64(i * i)}
	}
	y := make([]float64, 9)

	_, err := NewScreener().Screen(context.Background(), screening.Dataset{X: x, Y: y}, 0)
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestScreen_MissingAndInvalidInputs(t *testing.T) {
	ctx := context.Background()
	s := NewScreener()

	if _, err := s.Screen(ctx, screening.Dataset{Y: []float64{1, 2}}, 0); !errors.Is(err, core.ErrMissingInput) {
		t.Errorf("missing X: expected ErrMissingInput, got %v", err)
	}
	if _, err := s.Screen(ctx, screening.Dataset{X: [][]float64{{1}, {2}}}, 0); !errors.Is(err, core.ErrMissingInput) {
		t.Errorf("missing y: expected ErrMissingInput, got %v", err)
	}

	data := screening.Dataset{
		X: [][]float64{{1, 2}, {3, math.NaN()}},
		Y: []float64{1, 2},
	}
	if _, err := s.Screen(ctx, data, 0); !errors.Is(err, core.ErrInvalidValue) {
		t.Errorf("NaN in X: expected ErrInvalidValue, got %v", err)
	}
}

func TestScreen_DegenerateScreeningSize(t *testing.T) {
	data := screening.Dataset{X: [][]float64{{1, 2}}, Y: []float64{3}}
	_, err := NewScreener().Screen(context.Background(), data, 0)
	if !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("n=1 default size: expected ErrInvalidValue, got %v", err)
	}
}
