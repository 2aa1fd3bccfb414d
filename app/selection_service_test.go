package app

import (
	"context"
	"math"
	"testing"

	"ixscreen/adapters/scoring"
	"ixscreen/adapters/stats/dcor"
	"ixscreen/domain/core"
	"ixscreen/domain/screening"
	"ixscreen/internal/testkit"
	"ixscreen/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(scorer ports.SubsetScorer, renderer ports.ChartRenderer) *SelectionService {
	return NewSelectionService(dcor.NewScreener(), NewInteractionRanker(scorer), renderer)
}

func baseRequest(data screening.Dataset, heredity screening.Heredity, r1, r2 int) SelectRequest {
	return SelectRequest{
		Data:     data,
		Heredity: heredity,
		R1:       r1,
		R2:       r2,
		Table:    screening.NewInteractionTable(data.Cols()),
		Params:   ports.ScoreParams{Pi1: 0.5, Pi2: 0.5, Pi3: 0.5, Lambda: 1, Q: 5},
	}
}

// Near-constant predictors with y = 1 + x0 + x1 + x0*x1 + noise: under
// strong heredity the pool is the three pairs among the top-3 screened
// mains and the true interaction wins the ranking.
func TestSelect_StrongHeredityFindsTrueInteraction(t *testing.T) {
	data := testkit.NearConstantDataset(50, 4, 42)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	selection, err := service.Select(context.Background(), baseRequest(data, screening.HeredityStrong, 3, 3))
	require.NoError(t, err)

	assert.Len(t, selection.Ranking, 3, "C(3,2) candidate pairs")
	assert.Len(t, selection.SelectedMains, 3)
	assert.Len(t, selection.MainPool, 4)

	assert.Contains(t, selection.SelectedMains, 0, "true main x0 screened in")
	assert.Contains(t, selection.SelectedMains, 1, "true main x1 screened in")

	best := selection.Ranking[0]
	assert.Equal(t, screening.Pair{I: 0, J: 1}, best.Pair, "true interaction ranks first")

	sel := map[int]bool{}
	for _, m := range selection.SelectedMains {
		sel[m] = true
	}
	for _, row := range selection.Ranking {
		assert.True(t, sel[row.Pair.I] && sel[row.Pair.J], "strong heredity containment for %v", row.Pair)
	}
}

func TestSelect_NoHeredityUsesFullTable(t *testing.T) {
	data := testkit.NearConstantDataset(50, 4, 42)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	selection, err := service.Select(context.Background(), baseRequest(data, screening.HeredityNone, 3, 3))
	require.NoError(t, err)

	assert.Len(t, selection.Ranking, 6, "all C(4,2) pairs regardless of r1")
}

func TestSelect_R1BeyondColumnCountFails(t *testing.T) {
	data := testkit.InteractionDataset(30, 4, 1)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	_, err := service.Select(context.Background(), baseRequest(data, screening.HeredityStrong, 5, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestSelect_MissingTableFailsBeforeScreening(t *testing.T) {
	data := testkit.InteractionDataset(30, 4, 1)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	req := baseRequest(data, screening.HeredityStrong, 3, 3)
	req.Table = nil
	_, err := service.Select(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingTable)
}

func TestSelect_TableMainsMustMatchColumns(t *testing.T) {
	data := testkit.InteractionDataset(30, 4, 1)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	req := baseRequest(data, screening.HeredityStrong, 3, 3)
	req.Table = screening.NewInteractionTable(3)
	_, err := service.Select(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestSelect_NaNScoresSortLast(t *testing.T) {
	data := testkit.InteractionDataset(30, 3, 9)
	scorer := &testkit.FakeScorer{Scores: map[screening.Pair]float64{
		{I: 1, J: 2}: 1.0,
		{I: 0, J: 2}: 2.0,
		// (0,1) is absent and scores NaN.
	}}
	service := newService(scorer, &testkit.NoopRenderer{})

	selection, err := service.Select(context.Background(), baseRequest(data, screening.HeredityNone, 2, 3))
	require.NoError(t, err)
	require.Len(t, selection.Ranking, 3)

	assert.Equal(t, screening.Pair{I: 1, J: 2}, selection.Ranking[0].Pair)
	assert.Equal(t, screening.Pair{I: 0, J: 2}, selection.Ranking[1].Pair)
	assert.True(t, math.IsNaN(selection.Ranking[2].Score), "NaN row sorts last, not dropped")
}

func TestSelect_SingleCandidateReturnedUnchanged(t *testing.T) {
	data := testkit.InteractionDataset(30, 4, 5)
	scorer := &testkit.FakeScorer{Scores: map[screening.Pair]float64{}}
	service := newService(scorer, &testkit.NoopRenderer{})

	selection, err := service.Select(context.Background(), baseRequest(data, screening.HeredityStrong, 2, 1))
	require.NoError(t, err)
	require.Len(t, selection.Ranking, 1, "two selected mains yield one candidate pair")
	require.Len(t, selection.SelectedInteractions, 1)
	assert.Equal(t, selection.Ranking[0].Pair, selection.SelectedInteractions[0].Pair)
	assert.Equal(t, selection.Ranking[0].VariableIndex, selection.SelectedInteractions[0].VariableIndex)
}

func TestSelect_EmptyPoolFlowsThrough(t *testing.T) {
	data := testkit.InteractionDataset(30, 4, 5)
	service := newService(scoring.NewABCScorer(), &testkit.NoopRenderer{})

	selection, err := service.Select(context.Background(), baseRequest(data, screening.HeredityStrong, 1, 3))
	require.NoError(t, err)
	assert.Empty(t, selection.Ranking)
	assert.Empty(t, selection.SelectedInteractions)
}

func TestDetect_RendersTopOfRanking(t *testing.T) {
	data := testkit.NearConstantDataset(50, 4, 42)
	renderer := &testkit.NoopRenderer{}
	service := newService(scoring.NewABCScorer(), renderer)

	err := service.Detect(context.Background(), baseRequest(data, screening.HeredityNone, 3, 3))
	require.NoError(t, err)
	require.Len(t, renderer.Rendered, 1)
	assert.Len(t, renderer.Rendered[0], 6, "six candidates, all within the top-50 cap")
}
