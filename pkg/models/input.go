package models

// InputVariable is one company-supplied variable: its values plus
// optional declared bounds (carried through for upload-format
// compatibility; bounds are not enforced by the core).
type InputVariable struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
	MinVal *float64  `yaml:"min_val,omitempty"`
	MaxVal *float64  `yaml:"max_val,omitempty"`
}

// inputFile is the on-disk shape of an input upload:
// `{vars: [{name, values, min_val?, max_val?}]}`.
type inputFile struct {
	Vars []InputVariable `yaml:"vars"`
}

// Input is a name → Variable mapping (plus bounds) supplied by one
// company ahead of evaluation.
type Input struct {
	vars map[string]InputVariable
}

// NewInput builds an Input from a slice of InputVariables, keyed by
// name. A later entry with a duplicate name overwrites an earlier one.
func NewInput(vars []InputVariable) Input {
	m := make(map[string]InputVariable, len(vars))
	for _, v := range vars {
		m[v.Name] = v
	}
	return Input{vars: m}
}

// Size returns the number of variables supplied.
func (in Input) Size() int {
	return len(in.vars)
}

// HasVar reports whether name was supplied.
func (in Input) HasVar(name string) bool {
	_, ok := in.vars[name]
	return ok
}

// Get returns the named variable's values as a Variable.
func (in Input) Get(name string) (Variable, bool) {
	v, ok := in.vars[name]
	if !ok {
		return Variable{}, false
	}
	return NewVariable(v.Values), true
}
