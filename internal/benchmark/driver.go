// Package benchmark runs a loaded Algorithm across every participating
// company's Input and assembles the cross-company Output each company
// receives back: a four-stage pipeline of per-company compute,
// cluster-by-KPI, aggregate statistics, and assemble outputs. The
// first three stages fan work out across goroutines and collect
// results over channels; assembly runs sequentially.
package benchmark

import (
	"fmt"
	"time"

	"github.com/hwpib/benchmarking-engine/internal/algorithm"
	"github.com/hwpib/benchmarking-engine/internal/evaluator"
	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// ProgressFunc receives a human-readable progress line as the driver
// advances through its four stages, mirroring the "[k/4] ..."
// broadcast messages the Hub pushes to connected dashboards.
type ProgressFunc func(message string)

// Run executes alg against every company in companies and returns the
// final per-company Output, each KPI annotated with cross-company
// statistics. A per-company evaluation error (a ContractError) is fatal
// to the run, not just to one company: every company's evaluation
// still runs to completion, then the first error received is returned
// and no statistics are computed.
func Run(alg *algorithm.Algorithm, companies map[string]models.Input, progress ProgressFunc) (map[string]models.Output, error) {
	if progress == nil {
		progress = func(string) {}
	}

	// Stage 1: per-company compute.
	progress(fmt.Sprintf("[1/4] computing %d companies", len(companies)))
	raw, err := computeAll(alg, companies)
	if err != nil {
		return nil, err
	}

	// Stage 2: cluster by KPI.
	progress("[2/4] clustering results by KPI")
	clusters := clusterByKPI(alg.KPIs(), raw)

	// Stage 3: aggregate statistics.
	progress("[3/4] aggregating statistics")
	stats := aggregateAll(clusters)

	// Stage 4: assemble outputs.
	progress("[4/4] assembling per-company outputs")
	final := assembleOutputs(raw, stats)

	time.Sleep(time.Second)
	progress("benchmarking-success")
	return final, nil
}

type computeResult struct {
	companyID string
	output    models.Output
	err       error
}

// computeAll fans out one goroutine per company to run RunCompany
// concurrently, then collects every result over a single channel.
func computeAll(alg *algorithm.Algorithm, companies map[string]models.Input) (map[string]models.Output, error) {
	results := make(chan computeResult, len(companies))
	for id, in := range companies {
		go func(id string, in models.Input) {
			out, err := evaluator.RunCompany(alg, in)
			results <- computeResult{companyID: id, output: out, err: err}
		}(id, in)
	}

	out := make(map[string]models.Output, len(companies))
	var firstErr error
	for range companies {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("company %s: %w", r.companyID, r.err)
			}
			continue
		}
		out[r.companyID] = r.output
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// clusterByKPI regroups per-company Outputs into per-KPI clusters of
// (companyID, vector) pairs, the shape aggregate expects, building
// each KPI's cluster in its own goroutine.
func clusterByKPI(kpis []string, byCompany map[string]models.Output) map[string][]companyResult {
	type kpiCluster struct {
		kpi     string
		cluster []companyResult
	}
	results := make(chan kpiCluster, len(kpis))
	for _, kpi := range kpis {
		go func(kpi string) {
			var cluster []companyResult
			for companyID, out := range byCompany {
				v, ok := out.Result(kpi)
				if !ok {
					continue
				}
				cluster = append(cluster, companyResult{companyID: companyID, vector: v})
			}
			results <- kpiCluster{kpi: kpi, cluster: cluster}
		}(kpi)
	}

	clusters := make(map[string][]companyResult, len(kpis))
	for range kpis {
		r := <-results
		clusters[r.kpi] = r.cluster
	}
	return clusters
}

// aggregateAll runs aggregate concurrently for every KPI cluster,
// since clusters are independent of one another.
func aggregateAll(clusters map[string][]companyResult) map[string]models.OutputVariable {
	type statResult struct {
		kpi   string
		stats models.OutputVariable
	}
	results := make(chan statResult, len(clusters))
	for kpi, cluster := range clusters {
		go func(kpi string, cluster []companyResult) {
			results <- statResult{kpi: kpi, stats: aggregate(kpi, cluster)}
		}(kpi, cluster)
	}

	stats := make(map[string]models.OutputVariable, len(clusters))
	for range clusters {
		r := <-results
		stats[r.kpi] = r.stats
	}
	return stats
}

// assembleOutputs merges each company's own per-KPI result with the
// cross-company statistics computed for that KPI, producing the final
// Output each company is handed back.
func assembleOutputs(raw map[string]models.Output, stats map[string]models.OutputVariable) map[string]models.Output {
	final := make(map[string]models.Output, len(raw))
	for companyID, out := range raw {
		assembled := models.NewEmptyOutput()
		for kpi, v := range out.Vars() {
			statistics, ok := stats[kpi]
			if !ok {
				assembled.AddVar(v)
				continue
			}
			assembled.AddVar(models.WithStatistics(v, statistics))
		}
		final[companyID] = assembled
	}
	return final
}
