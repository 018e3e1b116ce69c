package benchmark

import (
	"math"
	"testing"
)

func TestAggregate_TwoCompaniesComputesAllStatistics(t *testing.T) {
	results := []companyResult{
		{companyID: "acme", vector: []float64{10}},
		{companyID: "globex", vector: []float64{20}},
	}

	out := aggregate("revenue", results)

	if out.BestInClass[0] != 10 {
		t.Fatalf("expected best-in-class=10, got %v", out.BestInClass)
	}
	if out.WorstInClass[0] != 20 {
		t.Fatalf("expected worst-in-class=20, got %v", out.WorstInClass)
	}
	if out.Median[0] != 15 {
		t.Fatalf("expected median=15 (avg of 2 companies), got %v", out.Median)
	}
	if out.Average[0] != 15 {
		t.Fatalf("expected mean=15, got %v", out.Average)
	}
	if out.LowerQuantile[0] != 10 {
		t.Fatalf("expected lower quartile=10 (index n/4=0 for n=2), got %v", out.LowerQuantile)
	}
	if out.UpperQuantile[0] != 20 {
		t.Fatalf("expected upper quartile=20 (index 3n/4=1 for n=2), got %v", out.UpperQuantile)
	}
}

func TestAggregate_SingleCompanyIsIdempotent(t *testing.T) {
	results := []companyResult{{companyID: "acme", vector: []float64{42}}}
	out := aggregate("revenue", results)

	for _, v := range [][]float64{out.BestInClass, out.WorstInClass, out.Median, out.LowerQuantile, out.UpperQuantile, out.Average} {
		if len(v) != 1 || v[0] != 42 {
			t.Fatalf("expected every statistic to collapse to 42 for one company, got %v", v)
		}
	}
}

func TestAggregate_InfiniteComponentDegradesToDefault(t *testing.T) {
	results := []companyResult{
		{companyID: "acme", vector: []float64{10}},
		{companyID: "globex", vector: []float64{math.Inf(1)}},
	}

	out := aggregate("revenue", results)
	if out.BestInClass != nil || out.Median != nil || out.Average != nil {
		t.Fatalf("expected DefaultEmptyOutputVariable when any result has an infinite component, got %+v", out)
	}
}

func TestAggregate_EmptyClusterDegradesToDefault(t *testing.T) {
	out := aggregate("revenue", nil)
	if out.BestInClass != nil || out.Median != nil {
		t.Fatalf("expected DefaultEmptyOutputVariable for an empty cluster, got %+v", out)
	}
}

func TestAggregate_QuantilesOnFourCompaniesAverageStraddlingPairs(t *testing.T) {
	results := []companyResult{
		{companyID: "a", vector: []float64{1}},
		{companyID: "b", vector: []float64{2}},
		{companyID: "c", vector: []float64{3}},
		{companyID: "d", vector: []float64{4}},
	}
	out := aggregate("metric", results)

	if out.Median[0] != 2.5 {
		t.Fatalf("expected median=2.5 for [1,2,3,4], got %v", out.Median)
	}
	if out.LowerQuantile[0] != 1.5 {
		t.Fatalf("expected lower quartile=1.5 (avg of sorted[0],sorted[1] for n=4), got %v", out.LowerQuantile)
	}
}
