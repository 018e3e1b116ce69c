package evaluator

import (
	"fmt"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// ResolvedValues is a write-once name→Variable table scoped to a
// single company's run. It is owned by exactly one goroutine (the
// worker evaluating that company) and is never shared or
// synchronized — callers must not hand a ResolvedValues across
// goroutine boundaries.
type ResolvedValues struct {
	values map[string]models.Variable
}

// NewResolvedValues returns an empty table sized for n expected
// entries.
func NewResolvedValues(n int) *ResolvedValues {
	return &ResolvedValues{values: make(map[string]models.Variable, n)}
}

// Has reports whether name has already been resolved.
func (rv *ResolvedValues) Has(name string) bool {
	_, ok := rv.values[name]
	return ok
}

// Insert records name's resolved value. Inserting a name twice is a
// programmer error (every atomic name is unique within an Algorithm,
// so a double-insert means the execution list was run out of order or
// duplicated) and panics rather than silently overwriting a prior
// result.
func (rv *ResolvedValues) Insert(name string, v models.Variable) {
	if _, dup := rv.values[name]; dup {
		panic(fmt.Sprintf("resolved values: duplicate insert for %q", name))
	}
	rv.values[name] = v
}

// Get returns the value resolved for name, if any.
func (rv *ResolvedValues) Get(name string) (models.Variable, bool) {
	v, ok := rv.values[name]
	return v, ok
}

// MustGet returns the value resolved for name, or a ContractError
// naming the atomic that expected it (used by dispatch, which only
// ever looks up a dependency after the builder's topological sort
// guarantees it was resolved earlier in the execution list).
func (rv *ResolvedValues) MustGet(atomicName, depName string) (models.Variable, error) {
	v, ok := rv.values[depName]
	if !ok {
		return models.Variable{}, newContractError(atomicName, "dependency %q not yet resolved", depName)
	}
	return v, nil
}

// Output builds an Output from every resolved name not present in
// exclude (the algorithm's non-KPI and required-input sets).
func (rv *ResolvedValues) Output(exclude map[string]struct{}) models.Output {
	out := models.NewEmptyOutput()
	for name, v := range rv.values {
		if _, skip := exclude[name]; skip {
			continue
		}
		out.AddVar(models.NewResultOnlyOutputVariable(name, v.Vector()))
	}
	return out
}
