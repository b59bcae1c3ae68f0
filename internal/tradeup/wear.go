package tradeup

import "math"

// MeanWear is the arithmetic mean of the effective input wears.
// An empty slice yields DefaultWear.
func MeanWear(entries []Entry) float64 {
	if len(entries) == 0 {
		return DefaultWear
	}
	wears := make([]float64, len(entries))
	for i, e := range entries {
		wears[i] = e.EffectiveWear()
	}
	return compensatedSum(wears) / float64(len(wears))
}

// compensatedSum is Neumaier's variant of Kahan summation. Ten inputs of
// 0.15 sum to exactly 1.5 here, where a naive loop drifts to 1.4999999999999998.
func compensatedSum(xs []float64) float64 {
	var sum, c float64
	for _, x := range xs {
		t := sum + x
		if math.Abs(sum) >= math.Abs(x) {
			c += (sum - t) + x
		} else {
			c += (x - t) + sum
		}
		sum = t
	}
	return sum + c
}
