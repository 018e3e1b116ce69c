package algorithm

import (
	"testing"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

func num(v float64) *models.Expression {
	return &models.Expression{Literal: &models.Literal{Constant: &v}}
}

func varRef(name string) *models.Expression {
	return &models.Expression{Literal: &models.Literal{Var: &name}}
}

// TestLower_NestedBinaryNamesInPostOrder mirrors k = a + (b * 2): the
// nested multiplication's operands must be fully resolved, and its own
// atomic emitted, before the outer addition claims the formula's name.
func TestLower_NestedBinaryNamesInPostOrder(t *testing.T) {
	formula := models.Formula{
		Name:  "k",
		IsKPI: true,
		Root: models.Expression{
			Binary: &models.BinaryExpression{
				Op:  models.OperatorAdd,
				LHS: varRef("a"),
				RHS: &models.Expression{
					Binary: &models.BinaryExpression{
						Op:  models.OperatorMultiply,
						LHS: varRef("b"),
						RHS: num(2),
					},
				},
			},
		},
	}

	atomics, err := Lower([]models.Formula{formula})
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if len(atomics) != 3 {
		t.Fatalf("expected 3 atomics, got %d: %+v", len(atomics), atomics)
	}

	he0000, he0001, k := atomics[0], atomics[1], atomics[2]

	if he0000.Name != "he0000" || he0000.Op != models.DefConst {
		t.Fatalf("expected he0000=DefConst, got %+v", he0000)
	}
	if c, _ := he0000.ConstValue(); c != 2 {
		t.Fatalf("expected he0000 constant 2, got %v", c)
	}

	if he0001.Name != "he0001" || he0001.Op != models.Multiplication {
		t.Fatalf("expected he0001=Multiplication, got %+v", he0001)
	}
	if len(he0001.Deps) != 2 || he0001.Deps[0] != "b" || he0001.Deps[1] != "he0000" {
		t.Fatalf("expected he0001 deps [b, he0000], got %v", he0001.Deps)
	}

	if k.Name != "k" || !k.IsKPI || k.Op != models.Addition {
		t.Fatalf("expected k=Addition(isKPI), got %+v", k)
	}
	if len(k.Deps) != 2 || k.Deps[0] != "a" || k.Deps[1] != "he0001" {
		t.Fatalf("expected k deps [a, he0001], got %v", k.Deps)
	}
}

// TestLower_TopLevelNumericLiteral covers a formula whose root is a
// bare constant.
func TestLower_TopLevelNumericLiteral(t *testing.T) {
	c := 7.0
	formula := models.Formula{
		Name:  "fixed",
		IsKPI: false,
		Root:  models.Expression{Literal: &models.Literal{Constant: &c}},
	}

	atomics, err := Lower([]models.Formula{formula})
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if len(atomics) != 1 {
		t.Fatalf("expected 1 atomic, got %d", len(atomics))
	}
	if atomics[0].Op != models.DefConst {
		t.Fatalf("expected DefConst, got %v", atomics[0].Op)
	}
	if v, _ := atomics[0].ConstValue(); v != 7 {
		t.Fatalf("expected constant 7, got %v", v)
	}
}

// TestLower_TopLevelVarLiteral covers a formula whose root is a bare
// variable reference, which lowers to an identity MultiplicationConst.
func TestLower_TopLevelVarLiteral(t *testing.T) {
	formula := models.Formula{
		Name:  "passthrough",
		IsKPI: true,
		Root:  models.Expression{Literal: &models.Literal{Var: strPtr("revenue")}},
	}

	atomics, err := Lower([]models.Formula{formula})
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if len(atomics) != 1 {
		t.Fatalf("expected 1 atomic, got %d", len(atomics))
	}
	a := atomics[0]
	if a.Op != models.MultiplicationConst || len(a.Deps) != 1 || a.Deps[0] != "revenue" {
		t.Fatalf("expected MultiplicationConst[revenue], got %+v", a)
	}
	if v, ok := a.ConstValue(); !ok || v != 1 {
		t.Fatalf("expected identity constant 1, got %v (ok=%v)", v, ok)
	}
}

// TestLower_NAryFlattensOperandsInOrder checks an n-ary Addition with
// one nested sub-expression operand names things in the same post-order
// discipline as the binary case.
func TestLower_NAryFlattensOperandsInOrder(t *testing.T) {
	formula := models.Formula{
		Name:  "total",
		IsKPI: true,
		Root: models.Expression{
			NAry: &models.NAryExpression{
				Op: models.OperatorAdd,
				Operands: []*models.Expression{
					varRef("a"),
					varRef("b"),
					{Binary: &models.BinaryExpression{Op: models.OperatorMultiply, LHS: varRef("c"), RHS: num(3)}},
				},
			},
		},
	}

	atomics, err := Lower([]models.Formula{formula})
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if len(atomics) != 3 {
		t.Fatalf("expected 3 atomics, got %d: %+v", len(atomics), atomics)
	}
	total := atomics[len(atomics)-1]
	if total.Name != "total" || len(total.Deps) != 3 {
		t.Fatalf("expected total with 3 deps, got %+v", total)
	}
	if total.Deps[0] != "a" || total.Deps[1] != "b" || total.Deps[2] != "he0001" {
		t.Fatalf("expected deps [a, b, he0001], got %v", total.Deps)
	}
}

func strPtr(s string) *string { return &s }
