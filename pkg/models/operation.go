package models

// OperationType is the closed set of atomic operation tags. It is
// string-backed rather than iota-backed so the YAML wire format
// round-trips as plain tag names rather than opaque integers.
type OperationType string

const (
	Addition   OperationType = "Addition"
	Subtraction OperationType = "Subtraction"
	Multiplication OperationType = "Multiplication"
	Minima     OperationType = "Minima"
	Maxima     OperationType = "Maxima"

	Division OperationType = "Division"
	Power    OperationType = "Power"

	AdditionConst       OperationType = "AdditionConst"
	SubtractionVarConst OperationType = "SubtractionVarConst"
	MultiplicationConst OperationType = "MultiplicationConst"
	DivisionVarConst    OperationType = "DivisionVarConst"
	PowerConst          OperationType = "PowerConst"
	PowerBaseConst      OperationType = "PowerBaseConst"

	SubtractionConstVar OperationType = "SubtractionConstVar"
	DivisionConstVar    OperationType = "DivisionConstVar"

	Squareroot    OperationType = "Squareroot"
	Absolute      OperationType = "Absolute"
	AdditionOverN OperationType = "AdditionOverN"
	MinimaOverN   OperationType = "MinimaOverN"
	MaximaOverN   OperationType = "MaximaOverN"

	DefConst OperationType = "DefConst"
)

// Shape names the dependency-count/constant shape an OperationType
// expects, named in the evaluator's arity error messages ("expects
// Binary with exactly 2 dependencies, got 1").
type Shape string

const (
	ShapeNAry   Shape = "NAry"
	ShapeBinary Shape = "Binary"
	ShapeUnary  Shape = "Unary"
)

// OperandSpec describes the arity/constant contract for one
// OperationType: its dependency-count shape and whether a constant
// must accompany it.
type OperandSpec struct {
	Shape           Shape
	MinDeps         int  // exact dep count for Binary/Unary/nullary; minimum for NAry
	ExactDeps       bool // if true, dep count must equal MinDeps exactly
	ConstantRequired bool
}

// operandSpecs is the exhaustive table of every OperationType's
// arity/constant contract. Both the evaluator (runtime dispatch) and
// any static validation consult this table rather than duplicating the
// rules inline.
var operandSpecs = map[OperationType]OperandSpec{
	Addition:       {Shape: ShapeNAry, MinDeps: 1},
	Subtraction:    {Shape: ShapeNAry, MinDeps: 1},
	Multiplication: {Shape: ShapeNAry, MinDeps: 1},
	Minima:         {Shape: ShapeNAry, MinDeps: 1},
	Maxima:         {Shape: ShapeNAry, MinDeps: 1},

	Division: {Shape: ShapeBinary, MinDeps: 2, ExactDeps: true},
	Power:    {Shape: ShapeBinary, MinDeps: 2, ExactDeps: true},

	AdditionConst:       {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	SubtractionVarConst: {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	MultiplicationConst: {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	DivisionVarConst:    {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	PowerConst:          {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	PowerBaseConst:      {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},

	SubtractionConstVar: {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},
	DivisionConstVar:    {Shape: ShapeBinary, MinDeps: 1, ExactDeps: true, ConstantRequired: true},

	Squareroot:    {Shape: ShapeUnary, MinDeps: 1, ExactDeps: true},
	Absolute:      {Shape: ShapeUnary, MinDeps: 1, ExactDeps: true},
	AdditionOverN: {Shape: ShapeUnary, MinDeps: 1, ExactDeps: true},
	MinimaOverN:   {Shape: ShapeUnary, MinDeps: 1, ExactDeps: true},
	MaximaOverN:   {Shape: ShapeUnary, MinDeps: 1, ExactDeps: true},

	DefConst: {Shape: ShapeUnary, MinDeps: 0, ExactDeps: true, ConstantRequired: true},
}

// SpecFor returns the arity/constant contract for op, and whether op
// is a recognized tag.
func SpecFor(op OperationType) (OperandSpec, bool) {
	spec, ok := operandSpecs[op]
	return spec, ok
}

