package profiling

import (
	"math/rand"
	"testing"
)

func hasWarning(p ColumnProfile, code WarningCode) bool {
	for _, w := range p.Warnings {
		if w == code {
			return true
		}
	}
	return false
}

func TestProfileColumn_Moments(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	p := ProfileColumn(0, data)

	if p.Mean != 3 {
		t.Errorf("expected mean 3, got %v", p.Mean)
	}
	if p.Min != 1 || p.Max != 5 {
		t.Errorf("expected range [1, 5], got [%v, %v]", p.Min, p.Max)
	}
	if !hasWarning(p, WarningLowN) {
		t.Error("expected LOW_N warning for 5 samples")
	}
}

func TestProfileColumn_NearConstant(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 7.0
	}
	p := ProfileColumn(2, data)

	if !hasWarning(p, WarningLowVariance) {
		t.Errorf("expected LOW_VARIANCE warning, got %v", p.Warnings)
	}
}

func TestProfileColumns_CoversEveryColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := make([][]float64, 50)
	for i := range x {
		x[i] = []float64{rng.NormFloat64(), rng.Float64()}
	}

	profiles := ProfileColumns(x)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	for j, p := range profiles {
		if p.Index != j {
			t.Errorf("profile %d has index %d", j, p.Index)
		}
		if p.StdDev <= 0 {
			t.Errorf("column %d: expected positive stddev", j)
		}
	}
}
