package fastqStats

import "math"

// Welford is a running mean/variance accumulator (Welford 1962), stable for
// long streams where sum-of-squares minus squared mean would cancel.
type Welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *Welford) Update(x float64) {
	w.n++
	var delta = x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

func (w *Welford) N() int {
	return w.n
}

func (w *Welford) Mean() float64 {
	return w.mean
}

// StdDev is the population standard deviation, 0 for fewer than two values.
func (w *Welford) StdDev() float64 {
	if w.n < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.n))
}
