package algorithm

import (
	"fmt"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// nameGen produces the monotonically increasing intermediate names
// `he0000`, `he0001`, ... used by lowering to name synthesized
// children. Names are allocated strictly in post-order:
// a sub-expression's own name is only allocated once every one of its
// operands has already been resolved (and, recursively, had its own
// name allocated first), so a parent atomic's dependency list never
// forward-references a name minted later than itself.
type nameGen struct {
	next uint32
}

func (g *nameGen) fresh() string {
	name := fmt.Sprintf("he%04d", g.next)
	g.next++
	return name
}

// Lower rewrites a set of named, KPI-flagged expression trees into a
// flat sequence of Atomics with unique names, in post-order. The root
// of each Formula is represented by an atomic named Formula.Name with
// Formula.IsKPI carried over; every synthesized intermediary atomic
// has IsKPI == false.
func Lower(forms []models.Formula) ([]models.Atomic, error) {
	gen := &nameGen{}
	var out []models.Atomic
	for _, f := range forms {
		if err := lowerRoot(f.Root, &out, gen, f.Name, f.IsKPI); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// lowerRoot lowers the root expression of one formula under its own
// name. A literal root is materialized directly (the "literal at the
// top level" rule); any other shape resolves its operands first
// (allocating fresh names for nested sub-expressions as needed) and
// then emits its own atomic under the formula's name.
func lowerRoot(expr models.Expression, out *[]models.Atomic, gen *nameGen, name string, isKPI bool) error {
	if expr.Literal != nil {
		return lowerTopLevelLiteral(*expr.Literal, out, name, isKPI)
	}
	op, deps, err := resolveNode(expr, out, gen)
	if err != nil {
		return err
	}
	*out = append(*out, models.NewAtomic(name, isKPI, op, deps, nil))
	return nil
}

// lowerTopLevelLiteral handles the case of a bare literal at the top
// of a formula: a numeric literal becomes a DefConst, a bare variable
// reference becomes an identity MultiplicationConst by 1.0, so every
// named KPI is backed by an atomic.
func lowerTopLevelLiteral(lit models.Literal, out *[]models.Atomic, name string, isKPI bool) error {
	if lit.IsNumeric() {
		*out = append(*out, models.NewAtomic(name, isKPI, models.DefConst, nil, lit.Constant))
		return nil
	}
	one := 1.0
	*out = append(*out, models.NewAtomic(name, isKPI, models.MultiplicationConst, []string{*lit.Var}, &one))
	return nil
}

// resolveNode resolves a Unary/Binary/NAry expression's operands
// (recursively, post-order) and returns the operation tag and the
// ordered dependency names to use in that node's own atomic. It never
// emits an atomic for expr itself — callers decide whether expr's
// result is named after a formula (lowerRoot) or after a freshly
// allocated intermediate name (lowerOperand).
func resolveNode(expr models.Expression, out *[]models.Atomic, gen *nameGen) (models.OperationType, []string, error) {
	switch {
	case expr.Unary != nil:
		op, err := expr.Unary.Op.ToAtomicOp()
		if err != nil {
			return "", nil, err
		}
		childName, err := lowerOperand(expr.Unary.Arg, out, gen)
		if err != nil {
			return "", nil, err
		}
		return op, []string{childName}, nil

	case expr.Binary != nil:
		op, err := expr.Binary.Op.ToAtomicOp()
		if err != nil {
			return "", nil, err
		}
		leftName, err := lowerOperand(expr.Binary.LHS, out, gen)
		if err != nil {
			return "", nil, err
		}
		rightName, err := lowerOperand(expr.Binary.RHS, out, gen)
		if err != nil {
			return "", nil, err
		}
		return op, []string{leftName, rightName}, nil

	case expr.NAry != nil:
		op, err := expr.NAry.Op.ToAtomicOp()
		if err != nil {
			return "", nil, err
		}
		names := make([]string, 0, len(expr.NAry.Operands))
		for _, operand := range expr.NAry.Operands {
			childName, err := lowerOperand(operand, out, gen)
			if err != nil {
				return "", nil, err
			}
			names = append(names, childName)
		}
		return op, names, nil

	default:
		return "", nil, newLoadError("empty expression")
	}
}

// lowerOperand resolves one operand of a unary/binary/n-ary
// expression to the name that should appear in the parent atomic's
// dependency list:
//   - a numeric literal synthesizes a DefConst child and returns its
//     freshly allocated name,
//   - a variable reference contributes its name directly, with no
//     atom emitted,
//   - any other sub-expression resolves its own operands first, then
//     allocates a fresh name for itself, emits its own atomic under
//     that name, and returns it.
func lowerOperand(expr *models.Expression, out *[]models.Atomic, gen *nameGen) (string, error) {
	if expr.Literal != nil {
		if expr.Literal.IsNumeric() {
			name := gen.fresh()
			*out = append(*out, models.NewAtomic(name, false, models.DefConst, nil, expr.Literal.Constant))
			return name, nil
		}
		return *expr.Literal.Var, nil
	}
	op, deps, err := resolveNode(*expr, out, gen)
	if err != nil {
		return "", err
	}
	name := gen.fresh()
	*out = append(*out, models.NewAtomic(name, false, op, deps, nil))
	return name, nil
}
