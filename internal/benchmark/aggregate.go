package benchmark

import (
	"fmt"
	"sort"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// companyResult pairs one company's raw KPI vector with its company
// ID, the unit clusterByKPI groups and aggregate sorts.
type companyResult struct {
	companyID string
	vector    []float64
}

// aggregate computes the six cross-company statistics for one KPI's
// cluster of per-company result vectors: best/worst-in-class (the
// sorted extremes), median, lower/upper quartile (with the median's
// even-count averaging rule generalized to any quantile), and the
// componentwise mean. A cluster that is empty or that contains an
// infinite component anywhere degrades to DefaultEmptyOutputVariable
// rather than reporting a misleading statistic.
func aggregate(name string, results []companyResult) models.OutputVariable {
	if len(results) == 0 {
		return models.DefaultEmptyOutputVariable()
	}
	for _, r := range results {
		if models.NewVariable(r.vector).HasInfinite() {
			return models.DefaultEmptyOutputVariable()
		}
	}

	sorted := make([][]float64, len(results))
	for i, r := range results {
		sorted[i] = r.vector
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return models.CompareFloat(sorted[i][0], sorted[j][0]) < 0
	})

	mean, err := componentwiseMean(sorted)
	if err != nil {
		return models.DefaultEmptyOutputVariable()
	}

	return models.OutputVariable{
		Name:          name,
		BestInClass:   sorted[0],
		WorstInClass:  sorted[len(sorted)-1],
		Median:        quantileAt(sorted, 0.5),
		LowerQuantile: quantileAt(sorted, 0.25),
		UpperQuantile: quantileAt(sorted, 0.75),
		Average:       mean,
	}
}

// quantileAt returns the p-quantile of an ascending-sorted cluster: if
// p*n lands exactly on an index, the result is the elementwise average
// of the two straddling vectors (the median's even-count averaging
// rule, generalized here to the lower/upper quartiles as well);
// otherwise it is the vector at the truncated index.
func quantileAt(sorted [][]float64, p float64) []float64 {
	n := len(sorted)
	pos := p * float64(n)
	idx := int(pos)
	if pos == float64(idx) && idx > 0 && idx < n {
		return averageElementwise(sorted[idx-1], sorted[idx])
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func averageElementwise(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

func componentwiseMean(vectors [][]float64) ([]float64, error) {
	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("aggregate: dimension mismatch, %d vs %d", dim, len(v))
		}
		for i, x := range v {
			sum[i] += x
		}
	}
	mean := make([]float64, dim)
	for i, x := range sum {
		mean[i] = x / float64(len(vectors))
	}
	return mean, nil
}
