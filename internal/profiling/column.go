package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WarningCode flags data characteristics that affect how screening
// scores should be read. Warnings are advisory, never fatal.
type WarningCode string

const (
	WarningLowVariance WarningCode = "LOW_VARIANCE" // near-constant column
	WarningNonNormal   WarningCode = "NON_NORMAL"   // strong skew/kurtosis departure
	WarningLowN        WarningCode = "LOW_N"        // sample size < 30
)

// ColumnProfile summarizes a single design-matrix column.
type ColumnProfile struct {
	Index    int           `json:"index"`
	Mean     float64       `json:"mean"`
	StdDev   float64       `json:"std_dev"`
	Min      float64       `json:"min"`
	Max      float64       `json:"max"`
	Variance float64       `json:"variance"`
	Warnings []WarningCode `json:"warnings,omitempty"`
}

// lowVarianceRatio is the stddev/|mean| floor below which a column is
// treated as near-constant. Columns at this floor still screen, but
// their dependence scores carry little information.
const lowVarianceRatio = 1e-6

// ProfileColumn computes summary moments and warnings for one column.
func ProfileColumn(index int, data []float64) ColumnProfile {
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	minV, _ := stats.Min(data)
	maxV, _ := stats.Max(data)
	variance, _ := stats.Variance(data)

	p := ColumnProfile{
		Index:    index,
		Mean:     mean,
		StdDev:   stdDev,
		Min:      minV,
		Max:      maxV,
		Variance: variance,
	}

	if len(data) < 30 {
		p.Warnings = append(p.Warnings, WarningLowN)
	}
	scale := math.Abs(mean)
	if scale < 1 {
		scale = 1
	}
	if stdDev/scale < lowVarianceRatio {
		p.Warnings = append(p.Warnings, WarningLowVariance)
	}
	if isNormal, _ := jarqueBeraNormality(data, mean, stdDev); !isNormal && len(data) >= 30 {
		p.Warnings = append(p.Warnings, WarningNonNormal)
	}
	return p
}

// ProfileColumns profiles every column of a row-major matrix.
func ProfileColumns(x [][]float64) []ColumnProfile {
	if len(x) == 0 {
		return nil
	}
	p := len(x[0])
	col := make([]float64, len(x))
	profiles := make([]ColumnProfile, 0, p)
	for j := 0; j < p; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		profiles = append(profiles, ProfileColumn(j, col))
	}
	return profiles
}

// jarqueBeraNormality runs a skewness/kurtosis normality check against
// a chi-square(2) reference.
func jarqueBeraNormality(data []float64, mean, stdDev float64) (bool, float64) {
	n := float64(len(data))
	if n < 8 || stdDev == 0 {
		return true, 1.0
	}

	skew := 0.0
	kurt := 0.0
	for _, v := range data {
		d := (v - mean) / stdDev
		skew += d * d * d
		kurt += d * d * d * d
	}
	skew /= n
	kurt = kurt/n - 3

	jb := n / 6 * (skew*skew + kurt*kurt/4)
	chi2 := distuv.ChiSquared{K: 2}
	pValue := 1 - chi2.CDF(jb)
	return pValue > 0.01, pValue
}
