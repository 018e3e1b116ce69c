package models

import "fmt"

// Operator is the token set recognized by the intermediary formula
// format: `OperatorAdd/Subtract/Multiply/Divide/Power`, `AbsLine`,
// `KeywordWurzel`, `KeywordMin`, `KeywordMax`.
type Operator string

const (
	OperatorAdd      Operator = "OperatorAdd"
	OperatorSubtract Operator = "OperatorSubtract"
	OperatorMultiply Operator = "OperatorMultiply"
	OperatorDivide   Operator = "OperatorDivide"
	OperatorPower    Operator = "OperatorPower"
	AbsLine          Operator = "AbsLine"
	KeywordWurzel    Operator = "KeywordWurzel"
	KeywordMin       Operator = "KeywordMin"
	KeywordMax       Operator = "KeywordMax"
)

// ToAtomicOp maps a lowering-layer Operator to the OperationType it
// lowers into.
func (o Operator) ToAtomicOp() (OperationType, error) {
	switch o {
	case OperatorAdd:
		return Addition, nil
	case OperatorSubtract:
		return Subtraction, nil
	case OperatorMultiply:
		return Multiplication, nil
	case OperatorDivide:
		return Division, nil
	case OperatorPower:
		return Power, nil
	case AbsLine:
		return Absolute, nil
	case KeywordWurzel:
		return Squareroot, nil
	case KeywordMin:
		return Minima, nil
	case KeywordMax:
		return Maxima, nil
	default:
		return "", fmt.Errorf("unrecognized operator token: %q", o)
	}
}

// Literal is either a numeric constant or a named variable reference
// at a leaf of an Expression tree.
type Literal struct {
	// Constant is set when this literal is numeric.
	Constant *float64 `yaml:"constant,omitempty"`
	// Var is set when this literal references a named variable.
	Var *string `yaml:"var,omitempty"`
}

func NumericLiteral(v float64) Literal {
	return Literal{Constant: &v}
}

func VarLiteral(name string) Literal {
	return Literal{Var: &name}
}

// IsNumeric reports whether l is a numeric literal.
func (l Literal) IsNumeric() bool {
	return l.Constant != nil
}

// Expression is a tagged variant over the four expression shapes the
// lowering layer accepts: Unary, Binary, NAry and Literal.
type Expression struct {
	Unary   *UnaryExpression  `yaml:"Unary,omitempty"`
	Binary  *BinaryExpression `yaml:"Binary,omitempty"`
	NAry    *NAryExpression   `yaml:"NAry,omitempty"`
	Literal *Literal          `yaml:"Literal,omitempty"`
}

type UnaryExpression struct {
	Op  Operator    `yaml:"op"`
	Arg *Expression `yaml:"var"`
}

type BinaryExpression struct {
	Op  Operator    `yaml:"op"`
	LHS *Expression `yaml:"lhs"`
	RHS *Expression `yaml:"rhs"`
}

type NAryExpression struct {
	Op       Operator      `yaml:"op"`
	Operands []*Expression `yaml:"vars"`
}

// Formula is one analyst-named KPI/intermediate formula: a name, the
// reporting flag, and the expression tree that computes it.
type Formula struct {
	Name  string     `yaml:"name"`
	IsKPI bool       `yaml:"is_kpi"`
	Root  Expression `yaml:"op"`
}
