package scoring

import (
	"context"
	"math"
	"testing"

	"ixscreen/domain/screening"
	"ixscreen/internal/testkit"
	"ixscreen/ports"
)

var testParams = ports.ScoreParams{Pi1: 0.5, Pi2: 0.5, Pi3: 0.5, Lambda: 1, Q: 5}

func TestScore_TrueInteractionScoresLower(t *testing.T) {
	data := testkit.InteractionDataset(60, 4, 7)
	table := screening.NewInteractionTable(4)
	scorer := NewABCScorer()
	ctx := context.Background()

	mains := []int{0, 1, 2}
	trueIdx, err := table.VariableIndex(screening.Pair{I: 0, J: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	noiseIdx, err := table.VariableIndex(screening.Pair{I: 2, J: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trueScore := scorer.Score(ctx, data, screening.HeredityStrong, nil, false, append(append([]int{}, mains...), trueIdx), table, testParams)
	noiseScore := scorer.Score(ctx, data, screening.HeredityStrong, nil, false, append(append([]int{}, mains...), noiseIdx), table, testParams)

	if math.IsNaN(trueScore) || math.IsNaN(noiseScore) {
		t.Fatalf("expected finite scores, got %v and %v", trueScore, noiseScore)
	}
	if trueScore >= noiseScore {
		t.Errorf("expected the true interaction to score lower: %v vs %v", trueScore, noiseScore)
	}
}

func TestScore_SuppliedSigma(t *testing.T) {
	data := testkit.InteractionDataset(60, 4, 11)
	table := screening.NewInteractionTable(4)
	scorer := NewABCScorer()

	sigma := 0.1
	score := scorer.Score(context.Background(), data, screening.HeredityStrong, &sigma, false, []int{0, 1, 4}, table, testParams)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		t.Fatalf("expected finite score with supplied sigma, got %v", score)
	}
}

func TestScore_ExtractionOmitsPenalty(t *testing.T) {
	data := testkit.InteractionDataset(60, 4, 13)
	table := screening.NewInteractionTable(4)
	scorer := NewABCScorer()
	ctx := context.Background()

	vars := []int{0, 1, 4}
	full := scorer.Score(ctx, data, screening.HeredityStrong, nil, false, vars, table, testParams)
	raw := scorer.Score(ctx, data, screening.HeredityStrong, nil, true, vars, table, testParams)

	if !(raw < full) {
		t.Errorf("expected raw goodness %v below the penalized score %v", raw, full)
	}
}

func TestScore_UnknownVariableIsNaN(t *testing.T) {
	data := testkit.InteractionDataset(30, 3, 17)
	table := screening.NewInteractionTable(3)

	score := NewABCScorer().Score(context.Background(), data, screening.HeredityStrong, nil, false, []int{0, 99}, table, testParams)
	if !math.IsNaN(score) {
		t.Errorf("expected NaN for an undecodable variable index, got %v", score)
	}
}

func TestScore_OverparameterizedFitIsNaN(t *testing.T) {
	data := testkit.InteractionDataset(3, 4, 19)
	table := screening.NewInteractionTable(4)

	score := NewABCScorer().Score(context.Background(), data, screening.HeredityStrong, nil, false, []int{0, 1, 2, 3}, table, testParams)
	if !math.IsNaN(score) {
		t.Errorf("expected NaN when parameters exceed observations, got %v", score)
	}
}
