package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"ixscreen/adapters/stats/dcor"
	"ixscreen/domain/core"
	"ixscreen/domain/screening"
	"ixscreen/ports"
)

// SelectionService runs the full stage-wise pipeline: dependence
// screening of main effects, heredity-constrained candidate
// construction, and criterion-based interaction ranking. Every call is
// a pure function of its request; no state is shared across calls.
type SelectionService struct {
	screener *dcor.Screener
	ranker   *InteractionRanker
	renderer ports.ChartRenderer
}

// SelectRequest carries every pipeline input. Table must be supplied
// by the caller (canonical pair enumeration over the main effects);
// the pipeline never regenerates it.
type SelectRequest struct {
	Data     screening.Dataset
	Heredity screening.Heredity
	Sigma    *float64 // nil: criterion estimates the noise scale itself
	R1       int      // mains selected before interaction scoring
	R2       int      // interactions promoted into the final selection
	NSIS     int      // screening size; <= 0 selects the n/log(n) default
	Table    *screening.InteractionTable
	Params   ports.ScoreParams
}

// NewSelectionService wires the pipeline stages
func NewSelectionService(screener *dcor.Screener, ranker *InteractionRanker, renderer ports.ChartRenderer) *SelectionService {
	return &SelectionService{screener: screener, ranker: ranker, renderer: renderer}
}

// Select runs screening, candidate generation, and ranking, returning
// the structured results without rendering anything.
func (s *SelectionService) Select(ctx context.Context, req SelectRequest) (*screening.Selection, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := time.Now()

	screened, err := s.screener.Screen(ctx, req.Data, req.NSIS)
	if err != nil {
		return nil, err
	}
	selectedMains := make([]int, req.R1)
	copy(selectedMains, screened.Ranked[:req.R1])

	candidates, err := screening.Candidates(req.Table, selectedMains, req.Heredity)
	if err != nil {
		return nil, err
	}

	ranking, err := s.ranker.Rank(ctx, req.Data, req.Heredity, req.Sigma, selectedMains, candidates, req.Table, req.Params)
	if err != nil {
		return nil, err
	}

	keep := req.R2
	if len(ranking) < keep {
		keep = len(ranking)
	}
	selection := &screening.Selection{
		Ranking:              ranking,
		SelectedMains:        selectedMains,
		MainPool:             screened.Ranked,
		SelectedInteractions: ranking[:keep],
	}

	log.Printf("[Selection] heredity=%s mains=%d candidates=%d ranked in %.2fms",
		req.Heredity, len(selectedMains), len(candidates),
		float64(time.Since(start).Nanoseconds())/1e6)
	return selection, nil
}

// Detect runs the full pipeline and hands the top of the ranking to
// the chart renderer. The chart is the only output.
func (s *SelectionService) Detect(ctx context.Context, req SelectRequest) error {
	selection, err := s.Select(ctx, req)
	if err != nil {
		return err
	}
	top := selection.Ranking
	if len(top) > maxRenderedRows {
		top = top[:maxRenderedRows]
	}
	return s.renderer.Render(ctx, top, req.Table)
}

// maxRenderedRows caps the rendered chart at the top of the ranking
const maxRenderedRows = 50

// validate applies the fail-fast checks that precede any computation.
// The interaction table is checked before screening so a missing
// artifact aborts without burning the O(n^2 p) pass.
func (s *SelectionService) validate(req SelectRequest) error {
	if req.Table == nil {
		return core.ErrMissingTable
	}
	if err := req.Data.Validate(); err != nil {
		return err
	}
	p := req.Data.Cols()
	if req.Table.Mains() != p {
		return core.NewShapeMismatchError(fmt.Sprintf("table built for %d mains, design matrix has %d", req.Table.Mains(), p))
	}
	if req.R1 < 1 || req.R1 > p {
		return core.NewInvalidValueError(fmt.Sprintf("r1=%d out of range for %d mains", req.R1, p))
	}
	if req.R2 < 0 {
		return core.NewInvalidValueError(fmt.Sprintf("r2=%d negative", req.R2))
	}
	if _, err := screening.ParseHeredity(string(req.Heredity)); err != nil {
		return err
	}
	return nil
}
