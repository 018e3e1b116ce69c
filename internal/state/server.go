// Package state holds the single shared, mutex-protected Server value
// the HTTP layer and the benchmark driver both operate on: the loaded
// Algorithm, the run configuration, and every company's admission
// record and private data.
package state

import (
	"sync"

	"github.com/hwpib/benchmarking-engine/internal/algorithm"
	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// Server is the process-wide shared state. Reads (algorithm and config
// lookups, company records, participation counts) take the read lock;
// writes (loading an algorithm or config, admitting a company,
// recording its input, attaching a finished benchmark run's outputs)
// take the write lock. A benchmark run evaluates a copy of the
// participating inputs and holds no lock while it computes.
type Server struct {
	mu sync.RWMutex

	alg       *algorithm.Algorithm
	config    models.BenchmarkingConfig
	companies map[string]models.Company
}

// New returns an empty Server: no algorithm loaded yet, no companies
// admitted.
func New() *Server {
	return &Server{companies: make(map[string]models.Company)}
}

// SetAlgorithm installs a newly built Algorithm, replacing any
// previous one. Company data is left untouched — the analyst is
// expected to reload formulas before input collection begins, not
// mid-run.
func (s *Server) SetAlgorithm(alg *algorithm.Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alg = alg
}

// Algorithm returns the currently loaded Algorithm, if any.
func (s *Server) Algorithm() (*algorithm.Algorithm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alg, s.alg != nil
}

// SetConfig installs the analyst-supplied run configuration.
func (s *Server) SetConfig(cfg models.BenchmarkingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// Config returns the current run configuration.
func (s *Server) Config() models.BenchmarkingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// AdmitCompany registers a company identity with no input yet, if it
// is not already known.
func (s *Server) AdmitCompany(id string, cert models.Certificate) models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.companies[id]; ok {
		return existing
	}
	c := models.NewCompany(id, cert)
	s.companies[id] = c
	return c
}

// SetCompanyInput records a company's submitted Input.
func (s *Server) SetCompanyInput(id string, in models.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		c = models.NewCompany(id, "")
	}
	c.InputData = in
	s.companies[id] = c
}

// SetCompanyOutput records a company's assigned Output once a
// benchmark run completes.
func (s *Server) SetCompanyOutput(id string, out models.Output) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return
	}
	c.ResultsData = out
	s.companies[id] = c
}

// Company returns one company's record, if known.
func (s *Server) Company(id string) (models.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	return c, ok
}

// ParticipatingInputs returns the Input of every company that has
// submitted data, keyed by company ID — exactly the set the benchmark
// driver should run over.
func (s *Server) ParticipatingInputs() map[string]models.Input {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Input)
	for id, c := range s.companies {
		if c.DoesParticipate() {
			out[id] = c.InputData
		}
	}
	return out
}

// ParticipantCount returns the number of companies that have
// submitted input so far.
func (s *Server) ParticipantCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.companies {
		if c.DoesParticipate() {
			n++
		}
	}
	return n
}

// CanRunBenchmark reports whether enough companies have submitted
// input to satisfy the run's k-anonymity floor: a KAnonymity of 0
// disables the check.
func (s *Server) CanRunBenchmark() bool {
	s.mu.RLock()
	k := s.config.KAnonymity
	s.mu.RUnlock()
	if k == 0 {
		return true
	}
	return uint64(s.ParticipantCount()) >= k
}
