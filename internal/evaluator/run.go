package evaluator

import (
	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// algorithm is the subset of *algorithm.Algorithm that RunCompany
// needs, kept as a local interface so this package does not import
// internal/algorithm and its tests can run against a stand-in.
type algorithm interface {
	Execution() []models.Atomic
	RequiredInputs() map[string]struct{}
	NonKPIs() map[string]struct{}
}

// RunCompany evaluates every atomic in alg's execution list against
// one company's Input and returns the resulting Output: every
// required-input placeholder and non-KPI intermediate is stripped,
// leaving only the named KPIs. in is assumed to already have passed
// the algorithm's VerifyInput check.
func RunCompany(alg algorithm, in models.Input) (models.Output, error) {
	required := alg.RequiredInputs()
	resolved := NewResolvedValues(len(alg.Execution()) + len(required))

	for name := range required {
		v, ok := in.Get(name)
		if !ok {
			return models.Output{}, &ContractError{Atomic: name, Reason: "required input not supplied"}
		}
		resolved.Insert(name, v)
	}

	for _, a := range alg.Execution() {
		if err := Calc(a, resolved); err != nil {
			return models.Output{}, err
		}
	}

	exclude := make(map[string]struct{}, len(required)+len(alg.NonKPIs()))
	for name := range required {
		exclude[name] = struct{}{}
	}
	for name := range alg.NonKPIs() {
		exclude[name] = struct{}{}
	}
	return resolved.Output(exclude), nil
}
