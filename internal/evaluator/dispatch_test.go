package evaluator

import (
	"testing"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

func constPtr(v float64) *float64 { return &v }

func TestCalc_SimpleAddition(t *testing.T) {
	resolved := NewResolvedValues(4)
	resolved.Insert("a", models.Scalar(2))
	resolved.Insert("b", models.Scalar(3))

	a := models.NewAtomic("k", true, models.Addition, []string{"a", "b"}, nil)
	if err := Calc(a, resolved); err != nil {
		t.Fatalf("Calc returned error: %v", err)
	}

	got, ok := resolved.Get("k")
	if !ok {
		t.Fatalf("expected k to be resolved")
	}
	if got.Vector()[0] != 5 {
		t.Fatalf("expected 5, got %v", got.Vector())
	}
}

func TestCalc_DivisionByZeroVariable(t *testing.T) {
	resolved := NewResolvedValues(2)
	resolved.Insert("a", models.Scalar(10))
	resolved.Insert("b", models.Scalar(0))

	a := models.NewAtomic("q", false, models.Division, []string{"a", "b"}, nil)
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected division by zero to be rejected")
	}
	if _, ok := err.(*ContractError); !ok {
		t.Fatalf("expected *ContractError, got %T", err)
	}
}

func TestCalc_DivisionConstVarByZeroValuedVariable(t *testing.T) {
	resolved := NewResolvedValues(1)
	resolved.Insert("denom", models.Scalar(0))

	a := models.NewAtomic("q", false, models.DivisionConstVar, []string{"denom"}, constPtr(10))
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected division by zero-valued variable to be rejected")
	}
}

func TestCalc_ArityViolation(t *testing.T) {
	resolved := NewResolvedValues(1)
	resolved.Insert("a", models.Scalar(1))

	a := models.NewAtomic("bad", false, models.Division, []string{"a"}, nil)
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected arity mismatch to be rejected for a Binary op given 1 dep")
	}
}

func TestCalc_MissingConstantViolation(t *testing.T) {
	resolved := NewResolvedValues(1)
	resolved.Insert("a", models.Scalar(1))

	a := models.NewAtomic("bad", false, models.AdditionConst, []string{"a"}, nil)
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected missing constant to be rejected for AdditionConst")
	}
}

func TestCalc_PowerConstAppliesVarToConstantExponent(t *testing.T) {
	resolved := NewResolvedValues(1)
	resolved.Insert("base", models.Scalar(2))

	a := models.NewAtomic("p", false, models.PowerConst, []string{"base"}, constPtr(3))
	if err := Calc(a, resolved); err != nil {
		t.Fatalf("Calc returned error: %v", err)
	}
	got, _ := resolved.Get("p")
	if got.Vector()[0] != 8 {
		t.Fatalf("expected 2^3=8, got %v", got.Vector())
	}
}

func TestCalc_UnusedConstantViolation(t *testing.T) {
	resolved := NewResolvedValues(2)
	resolved.Insert("a", models.Scalar(1))
	resolved.Insert("b", models.Scalar(2))

	a := models.NewAtomic("bad", false, models.Addition, []string{"a", "b"}, constPtr(5))
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected a stray constant on a no-const op to be rejected")
	}
	if _, ok := err.(*ContractError); !ok {
		t.Fatalf("expected *ContractError, got %T", err)
	}
}

func TestCalc_SubtractionVarConstByZeroConstant(t *testing.T) {
	resolved := NewResolvedValues(1)
	resolved.Insert("a", models.Scalar(10))

	a := models.NewAtomic("bad", false, models.SubtractionVarConst, []string{"a"}, constPtr(0))
	err := Calc(a, resolved)
	if err == nil {
		t.Fatalf("expected subtraction by a zero constant to be rejected")
	}
}

func TestCalc_MinimaElementwiseAcrossVariables(t *testing.T) {
	resolved := NewResolvedValues(2)
	resolved.Insert("a", models.NewVariable([]float64{1, 9}))
	resolved.Insert("b", models.NewVariable([]float64{5, 2}))

	a := models.NewAtomic("m", false, models.Minima, []string{"a", "b"}, nil)
	if err := Calc(a, resolved); err != nil {
		t.Fatalf("Calc returned error: %v", err)
	}
	got, _ := resolved.Get("m")
	if got.Vector()[0] != 1 || got.Vector()[1] != 2 {
		t.Fatalf("expected [1,2], got %v", got.Vector())
	}
}
