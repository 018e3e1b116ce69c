package evaluator

import (
	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// Calc resolves one atomic against resolved, checking its dependency
// count and constant presence against its OperationType's contract
// before dispatching to the matching pure operation. It inserts the
// result into resolved under a.Name. Atomic's dependencies must
// already be present in resolved — the caller (RunCompany) is
// responsible for running atomics in the algorithm's topological
// order. A constant operand is applied as a length-1 Variable and is
// not broadcast, so a constant-bearing operation on a variable longer
// than 1 fails with a dimension-mismatch ContractError.
func Calc(a models.Atomic, resolved *ResolvedValues) error {
	spec, ok := models.SpecFor(a.Op)
	if !ok {
		return newContractError(a.Name, "unrecognized operation %q", a.Op)
	}
	if err := checkArity(a, spec); err != nil {
		return err
	}
	if spec.ConstantRequired && a.Constant == nil {
		return newContractError(a.Name, "operation %q requires a constant", a.Op)
	}
	if !spec.ConstantRequired && a.Constant != nil {
		return newContractError(a.Name, "operation %q has unused constant", a.Op)
	}

	deps, err := resolveDeps(a, resolved)
	if err != nil {
		return err
	}

	var result models.Variable
	switch a.Op {
	case models.Addition:
		result, err = models.SumVariables(deps)
	case models.Multiplication:
		result, err = models.ProductVariables(deps)
	case models.Subtraction:
		result, err = subtractAll(deps)
	case models.Minima:
		result, err = models.MinVariables(deps)
	case models.Maxima:
		result, err = models.MaxVariables(deps)

	case models.Division:
		result, err = divide(a.Name, deps[0], deps[1])
	case models.Power:
		result, err = deps[0].Powf(deps[1])

	case models.AdditionConst:
		result, err = deps[0].Add(models.Scalar(*a.Constant))
	case models.SubtractionVarConst:
		if *a.Constant == 0 {
			return newContractError(a.Name, "subtraction by zero constant")
		}
		result, err = deps[0].Sub(models.Scalar(*a.Constant))
	case models.MultiplicationConst:
		result, err = deps[0].Mul(models.Scalar(*a.Constant))
	case models.DivisionVarConst:
		if *a.Constant == 0 {
			return newContractError(a.Name, "division by zero constant")
		}
		result, err = deps[0].Div(models.Scalar(*a.Constant))
	case models.PowerConst:
		result, err = deps[0].Powf(models.Scalar(*a.Constant))
	case models.PowerBaseConst:
		result, err = models.Scalar(*a.Constant).Powf(deps[0])

	case models.SubtractionConstVar:
		result, err = models.Scalar(*a.Constant).Sub(deps[0])
	case models.DivisionConstVar:
		if deps[0].HasZero() {
			return newContractError(a.Name, "division by zero-valued variable")
		}
		result, err = models.Scalar(*a.Constant).Div(deps[0])

	case models.Squareroot:
		result = deps[0].Sqrt()
	case models.Absolute:
		result = deps[0].Abs()
	case models.AdditionOverN:
		result = deps[0].SumOverN()
	case models.MinimaOverN:
		result = deps[0].MinOverN()
	case models.MaximaOverN:
		result = deps[0].MaxOverN()

	case models.DefConst:
		result = models.Scalar(*a.Constant)

	default:
		return newContractError(a.Name, "unhandled operation %q", a.Op)
	}
	if err != nil {
		return newContractError(a.Name, "%v", err)
	}

	resolved.Insert(a.Name, result)
	return nil
}

// checkArity enforces spec's arity contract for a's dependency count.
func checkArity(a models.Atomic, spec models.OperandSpec) error {
	n := len(a.Deps)
	if spec.ExactDeps {
		if n != spec.MinDeps {
			return newContractError(a.Name, "operation %q expects %s with exactly %d dependencies, got %d", a.Op, spec.Shape, spec.MinDeps, n)
		}
		return nil
	}
	if n < spec.MinDeps {
		return newContractError(a.Name, "operation %q expects %s with at least %d dependencies, got %d", a.Op, spec.Shape, spec.MinDeps, n)
	}
	return nil
}

// resolveDeps looks up every one of a's dependencies in resolved, in
// order.
func resolveDeps(a models.Atomic, resolved *ResolvedValues) ([]models.Variable, error) {
	deps := make([]models.Variable, 0, len(a.Deps))
	for _, name := range a.Deps {
		v, err := resolved.MustGet(a.Name, name)
		if err != nil {
			return nil, err
		}
		deps = append(deps, v)
	}
	return deps, nil
}

// divide applies Division's zero-divisor contract: the right operand
// must not contain a zero component.
func divide(name string, left, right models.Variable) (models.Variable, error) {
	if right.HasZero() {
		return models.Variable{}, newContractError(name, "division by zero-valued variable")
	}
	return left.Div(right)
}

// subtractAll folds a non-empty n-ary Subtraction left to right:
// deps[0] - deps[1] - deps[2] - ...
func subtractAll(deps []models.Variable) (models.Variable, error) {
	acc := deps[0]
	var err error
	for _, v := range deps[1:] {
		acc, err = acc.Sub(v)
		if err != nil {
			return models.Variable{}, err
		}
	}
	return acc, nil
}

