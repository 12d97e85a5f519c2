package fastqStats

import (
	"math"
	"math/rand"
	"testing"
)

// batchMeanStdDev is the two-pass population mean and standard deviation.
func batchMeanStdDev(xs []float64) (mean, sd float64) {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}

func TestWelford_MatchesBatch(t *testing.T) {
	var rng = rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 10, 1000, 100000} {
		var (
			w  Welford
			xs = make([]float64, n)
		)
		for i := range xs {
			// large offset, small spread: hard case for sum-of-squares
			xs[i] = 1e4 + 30*rng.Float64()
			w.Update(xs[i])
		}
		mean, sd := batchMeanStdDev(xs)
		if w.N() != n {
			t.Errorf("n=%d: N() = %d", n, w.N())
		}
		if math.Abs(w.Mean()-mean) > 1e-9*mean {
			t.Errorf("n=%d: Mean() = %.12f; want %.12f", n, w.Mean(), mean)
		}
		if math.Abs(w.StdDev()-sd) > 1e-6*math.Max(sd, 1) {
			t.Errorf("n=%d: StdDev() = %.12f; want %.12f", n, w.StdDev(), sd)
		}
	}
}

func TestWelford_Small(t *testing.T) {
	var w Welford
	if w.Mean() != 0 || w.StdDev() != 0 {
		t.Errorf("empty Welford: mean=%f sd=%f", w.Mean(), w.StdDev())
	}
	w.Update(5)
	if w.Mean() != 5 || w.StdDev() != 0 {
		t.Errorf("single value: mean=%f sd=%f; want 5, 0", w.Mean(), w.StdDev())
	}
	w.Update(7)
	if w.Mean() != 6 || w.StdDev() != 1 {
		t.Errorf("two values: mean=%f sd=%f; want 6, 1", w.Mean(), w.StdDev())
	}
}
