package scoring

import (
	"context"
	"math"

	"ixscreen/domain/screening"
	"ixscreen/ports"

	"gonum.org/v1/gonum/mat"
)

// ABCScorer is a reference implementation of the subset-scoring
// criterion port: an approximation-based criterion built from a
// least-squares fit of the candidate variable set plus a
// prior-weighted complexity penalty. Lower scores are better. It lives
// strictly behind the port; the screening pipeline knows nothing
// about it and callers may substitute any other criterion.
type ABCScorer struct{}

// NewABCScorer creates the reference criterion
func NewABCScorer() *ABCScorer {
	return &ABCScorer{}
}

// Score fits y on an intercept plus the requested variables (main
// columns for indices < p, interaction product columns for indices
// >= p, decoded through the table) and returns
//
//	RSS/sigma^2 + 2*lambda*C(model)
//
// where C charges -log(pi1) per main effect, -log(pi2) per quadratic
// effect, and -log(pi3) per interaction. A nil sigma is estimated from
// the residual mean square of the full main-effects fit. When
// extraction is set, the penalty is omitted and the raw goodness term
// is returned. Undefined fits (singular design, unknown variable
// index) yield NaN, which callers sort last.
func (s *ABCScorer) Score(ctx context.Context, data screening.Dataset, heredity screening.Heredity,
	sigma *float64, extraction bool, variables []int,
	table *screening.InteractionTable, params ports.ScoreParams) float64 {

	n := data.Rows()
	p := data.Cols()
	if n == 0 || p == 0 || table == nil {
		return math.NaN()
	}

	cols, counts, ok := buildDesignColumns(data, variables, table)
	if !ok {
		return math.NaN()
	}

	rss, ok := residualSumOfSquares(cols, data.Y)
	if !ok {
		return math.NaN()
	}

	sig2 := 0.0
	if sigma != nil {
		sig2 = (*sigma) * (*sigma)
	} else {
		sig2 = s.estimateNoiseVariance(data)
	}
	if sig2 <= 0 || math.IsNaN(sig2) {
		return math.NaN()
	}

	goodness := rss / sig2
	if extraction {
		return goodness
	}

	complexity := float64(counts.mains)*safeNegLog(params.Pi1) +
		float64(counts.quadratics)*safeNegLog(params.Pi2) +
		float64(counts.interactions)*safeNegLog(params.Pi3)
	return goodness + 2*params.Lambda*complexity
}

// estimateNoiseVariance fits the full main-effects model and uses its
// residual mean square as the noise scale (RMSE-based estimation).
func (s *ABCScorer) estimateNoiseVariance(data screening.Dataset) float64 {
	n := data.Rows()
	p := data.Cols()
	cols := make([][]float64, p)
	for j := 0; j < p; j++ {
		cols[j] = data.Column(j)
	}
	rss, ok := residualSumOfSquares(cols, data.Y)
	if !ok {
		return math.NaN()
	}
	dof := n - p - 1
	if dof < 1 {
		dof = 1
	}
	return rss / float64(dof)
}

type effectCounts struct {
	mains        int
	quadratics   int
	interactions int
}

// buildDesignColumns materializes the requested variable columns:
// main-effect columns directly, interaction indices as the product of
// their parent columns.
func buildDesignColumns(data screening.Dataset, variables []int, table *screening.InteractionTable) ([][]float64, effectCounts, bool) {
	p := data.Cols()
	n := data.Rows()
	cols := make([][]float64, 0, len(variables))
	var counts effectCounts

	for _, v := range variables {
		switch {
		case v >= 0 && v < p:
			cols = append(cols, data.Column(v))
			counts.mains++
		case v >= p:
			pr, ok := table.PairAt(v - p)
			if !ok {
				return nil, counts, false
			}
			a := data.Column(pr.I)
			b := data.Column(pr.J)
			prod := make([]float64, n)
			for i := 0; i < n; i++ {
				prod[i] = a[i] * b[i]
			}
			cols = append(cols, prod)
			if pr.I == pr.J {
				counts.quadratics++
			} else {
				counts.interactions++
			}
		default:
			return nil, counts, false
		}
	}
	return cols, counts, true
}

// residualSumOfSquares solves the least-squares problem with an
// intercept via QR and returns the RSS of the fit.
func residualSumOfSquares(cols [][]float64, y []float64) (float64, bool) {
	n := len(y)
	k := len(cols) + 1
	if n < k {
		return 0, false
	}

	x := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range cols {
			x.Set(i, j+1, col[i])
		}
	}
	yv := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		yv.Set(i, 0, y[i])
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, yv); err != nil {
		return 0, false
	}

	var fitted mat.Dense
	fitted.Mul(x, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.At(i, 0)
		rss += r * r
	}
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return 0, false
	}
	return rss, true
}

// safeNegLog maps a prior weight in (0, 1] to its complexity charge;
// weights outside that range contribute nothing rather than poisoning
// the score.
func safeNegLog(pi float64) float64 {
	if pi <= 0 || pi > 1 {
		return 0
	}
	return -math.Log(pi)
}
