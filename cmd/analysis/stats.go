//go:build analysis

package main

import (
	"math"
	"sort"
)

type summaryStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Median   float64 `json:"median"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	MaxAbs   float64 `json:"max_abs"`
	Skewness float64 `json:"skewness"`
}

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	st := summaryStats{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		MaxAbs: math.Max(math.Abs(sorted[0]), math.Abs(sorted[n-1])),
	}
	for _, v := range x {
		st.Mean += v
	}
	st.Mean /= float64(n)
	var m2, m3 float64
	for _, v := range x {
		d := v - st.Mean
		m2 += d * d
		m3 += d * d * d
	}
	if n > 1 {
		st.Std = math.Sqrt(m2 / float64(n-1))
	}
	if m2 > 0 {
		st.Skewness = (m3 / float64(n)) / math.Pow(m2/float64(n), 1.5)
	}
	return st
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, p float64) float64 {
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	l := int(math.Floor(pos))
	w := pos - float64(l)
	if l+1 >= len(sorted) {
		return sorted[l]
	}
	return sorted[l]*(1-w) + sorted[l+1]*w
}

// integerHistogram counts exact values; coefficients and attempt counts
// are integers, so no binning rule is needed.
func integerHistogram(values []float64) (labels []int64, counts []int) {
	byValue := map[int64]int{}
	for _, v := range values {
		byValue[int64(v)]++
	}
	for k := range byValue {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	counts = make([]int, len(labels))
	for i, k := range labels {
		counts[i] = byValue[k]
	}
	return labels, counts
}

// bucketHistogram groups values into nbins equal-width buckets.
func bucketHistogram(values []float64, nbins int) (centers []float64, counts []int) {
	if len(values) == 0 || nbins < 1 {
		return nil, nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(nbins)
	if width <= 0 {
		width = 1
	}
	counts = make([]int, nbins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}
	centers = make([]float64, nbins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}
	return centers, counts
}
