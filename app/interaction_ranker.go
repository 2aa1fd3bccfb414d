package app

import (
	"context"
	"math"
	"runtime"
	"sort"

	"ixscreen/domain/screening"
	"ixscreen/ports"

	"golang.org/x/sync/semaphore"
)

// InteractionRanker scores each candidate interaction against the
// response through the injected criterion and produces a score-sorted
// ranking. Criterion invocations are independent, so they run under a
// bounded worker pool; each candidate owns its result slot, keeping
// output deterministic regardless of completion order.
type InteractionRanker struct {
	scorer  ports.SubsetScorer
	workers int64
}

// NewInteractionRanker creates a ranker around a scoring criterion
func NewInteractionRanker(scorer ports.SubsetScorer) *InteractionRanker {
	return &InteractionRanker{scorer: scorer, workers: int64(runtime.GOMAXPROCS(0))}
}

// Rank maps each candidate pair to its absolute variable index,
// invokes the criterion with the selected mains plus that one
// interaction, and sorts ascending by score. NaN scores are valid
// results and sort last; they are never dropped. A ranking of length
// <= 1 is returned as-is (sorting is a no-op on it).
func (r *InteractionRanker) Rank(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
	sigma *float64, selectedMains []int, candidates []screening.Pair,
	table *screening.InteractionTable, params ports.ScoreParams) ([]screening.RankedInteraction, error) {

	ranking := make([]screening.RankedInteraction, len(candidates))
	for i, pr := range candidates {
		idx, err := table.VariableIndex(pr)
		if err != nil {
			return nil, err
		}
		ranking[i] = screening.RankedInteraction{VariableIndex: idx, Pair: pr}
	}

	sem := semaphore.NewWeighted(r.workers)
	for i := range ranking {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(i int) {
			defer sem.Release(1)
			vars := make([]int, 0, len(selectedMains)+1)
			vars = append(vars, selectedMains...)
			vars = append(vars, ranking[i].VariableIndex)
			ranking[i].Score = r.scorer.Score(ctx, data, heredity, sigma, false, vars, table, params)
		}(i)
	}
	if err := sem.Acquire(ctx, r.workers); err != nil {
		return nil, err
	}
	sem.Release(r.workers)

	if len(ranking) > 1 {
		sort.SliceStable(ranking, func(a, b int) bool {
			sa, sb := ranking[a].Score, ranking[b].Score
			if math.IsNaN(sa) {
				return false
			}
			if math.IsNaN(sb) {
				return true
			}
			return sa < sb
		})
	}
	return ranking, nil
}
