package algorithm

import (
	"testing"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

func constAtomic(name string, v float64) models.Atomic {
	return models.NewAtomic(name, false, models.DefConst, nil, &v)
}

func TestLoadAtomics_TopologicalOrderRespectsDependencies(t *testing.T) {
	ops := []models.Atomic{
		models.NewAtomic("k", true, models.Addition, []string{"a", "doubled"}, nil),
		models.NewAtomic("doubled", false, models.MultiplicationConst, []string{"b"}, ptr(2.0)),
	}

	alg, err := LoadAtomics(ops)
	if err != nil {
		t.Fatalf("LoadAtomics returned error: %v", err)
	}

	exec := alg.Execution()
	index := make(map[string]int, len(exec))
	for i, a := range exec {
		index[a.Name] = i
	}
	if index["doubled"] >= index["k"] {
		t.Fatalf("expected doubled to execute before k, got order %v", exec)
	}

	required := alg.RequiredInputs()
	if _, ok := required["a"]; !ok {
		t.Fatalf("expected 'a' synthesized as a required input, got %v", required)
	}
	if _, ok := required["b"]; !ok {
		t.Fatalf("expected 'b' synthesized as a required input, got %v", required)
	}

	for _, a := range exec {
		if a.Name == "a" || a.Name == "b" {
			t.Fatalf("required-input placeholders must be stripped from the execution list, found %q", a.Name)
		}
	}

	if kpis := alg.KPIs(); len(kpis) != 1 || kpis[0] != "k" {
		t.Fatalf("expected KPIs=[k], got %v", kpis)
	}
}

func TestLoadAtomics_RejectsCycle(t *testing.T) {
	ops := []models.Atomic{
		models.NewAtomic("x", false, models.AdditionConst, []string{"y"}, ptr(1.0)),
		models.NewAtomic("y", false, models.AdditionConst, []string{"x"}, ptr(1.0)),
	}

	_, err := LoadAtomics(ops)
	if err == nil {
		t.Fatalf("expected a cycle to be rejected, got nil error")
	}
	if _, ok := err.(*LoadError); !ok {
		t.Fatalf("expected *LoadError, got %T: %v", err, err)
	}
}

func TestLoadAtomics_RejectsDuplicateName(t *testing.T) {
	ops := []models.Atomic{
		constAtomic("x", 1),
		constAtomic("x", 2),
	}
	_, err := LoadAtomics(ops)
	if err == nil {
		t.Fatalf("expected a duplicate name to be rejected, got nil error")
	}
}

func TestLoadAtomics_RejectsEmptySet(t *testing.T) {
	_, err := LoadAtomics(nil)
	if err == nil {
		t.Fatalf("expected an empty atomic set to be rejected, got nil error")
	}
}

func TestLoadAtomics_KPIsInDeclaredOrderNotExecutionOrder(t *testing.T) {
	// "second" is declared before "first" but depends on it, so the
	// topological sort runs "first" first — KPIs must still come back in
	// declaration order.
	ops := []models.Atomic{
		models.NewAtomic("second", true, models.MultiplicationConst, []string{"first"}, ptr(2.0)),
		models.NewAtomic("first", true, models.MultiplicationConst, []string{"x"}, ptr(3.0)),
	}

	alg, err := LoadAtomics(ops)
	if err != nil {
		t.Fatalf("LoadAtomics returned error: %v", err)
	}

	kpis := alg.KPIs()
	if len(kpis) != 2 || kpis[0] != "second" || kpis[1] != "first" {
		t.Fatalf("expected KPIs in declared order [second, first], got %v", kpis)
	}
}

func TestVerifyInput_ReportsMissingNames(t *testing.T) {
	ops := []models.Atomic{
		models.NewAtomic("k", true, models.Addition, []string{"a", "b"}, nil),
	}
	alg, err := LoadAtomics(ops)
	if err != nil {
		t.Fatalf("LoadAtomics returned error: %v", err)
	}

	in := models.NewInput([]models.InputVariable{{Name: "a", Values: []float64{1}}})
	err = alg.VerifyInput(in)
	if err == nil {
		t.Fatalf("expected VerifyInput to report missing 'b'")
	}
	inputErr, ok := err.(*InputError)
	if !ok {
		t.Fatalf("expected *InputError, got %T", err)
	}
	if len(inputErr.Missing) != 1 || inputErr.Missing[0] != "b" {
		t.Fatalf("expected missing=[b], got %v", inputErr.Missing)
	}
}

func ptr(v float64) *float64 { return &v }
