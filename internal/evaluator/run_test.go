package evaluator

import (
	"testing"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// fakeAlgorithm is a minimal stand-in for *algorithm.Algorithm so this
// package's tests don't need to import internal/algorithm.
type fakeAlgorithm struct {
	execution      []models.Atomic
	requiredInputs map[string]struct{}
	nonKPIs        map[string]struct{}
}

func (f *fakeAlgorithm) Execution() []models.Atomic          { return f.execution }
func (f *fakeAlgorithm) RequiredInputs() map[string]struct{} { return f.requiredInputs }
func (f *fakeAlgorithm) NonKPIs() map[string]struct{}        { return f.nonKPIs }

func TestRunCompany_StripsRequiredInputsAndNonKPIs(t *testing.T) {
	alg := &fakeAlgorithm{
		execution: []models.Atomic{
			models.NewAtomic("doubled", false, models.MultiplicationConst, []string{"revenue"}, constPtr(2)),
			models.NewAtomic("k", true, models.AdditionConst, []string{"doubled"}, constPtr(1)),
		},
		requiredInputs: map[string]struct{}{"revenue": {}},
		nonKPIs:        map[string]struct{}{"doubled": {}},
	}

	in := models.NewInput([]models.InputVariable{{Name: "revenue", Values: []float64{10}}})

	out, err := RunCompany(alg, in)
	if err != nil {
		t.Fatalf("RunCompany returned error: %v", err)
	}
	if out.Size() != 1 {
		t.Fatalf("expected exactly the KPI in the output, got %d vars: %v", out.Size(), out.Vars())
	}
	result, ok := out.Result("k")
	if !ok {
		t.Fatalf("expected k in output")
	}
	if result[0] != 21 {
		t.Fatalf("expected k=21, got %v", result)
	}
}

func TestRunCompany_MissingRequiredInputIsFatal(t *testing.T) {
	alg := &fakeAlgorithm{
		execution:      []models.Atomic{models.NewAtomic("k", true, models.AdditionConst, []string{"revenue"}, constPtr(1))},
		requiredInputs: map[string]struct{}{"revenue": {}},
		nonKPIs:        map[string]struct{}{},
	}
	_, err := RunCompany(alg, models.NewInput(nil))
	if err == nil {
		t.Fatalf("expected a missing required input to be fatal")
	}
}
