package models

// OutputVariable is one reported KPI: the company's raw result plus
// the six cross-company statistics. A result-only OutputVariable
// (statistics empty) is produced by per-company evaluation;
// statistics are filled in during cross-company aggregation.
type OutputVariable struct {
	Name           string    `yaml:"name"`
	Result         []float64 `yaml:"result"`
	BestInClass    []float64 `yaml:"best_in_class"`
	WorstInClass   []float64 `yaml:"worst_in_class"`
	Average        []float64 `yaml:"average"`
	Median         []float64 `yaml:"median"`
	LowerQuantile  []float64 `yaml:"lower_quantile"`
	UpperQuantile  []float64 `yaml:"upper_quantile"`
}

// NewResultOnlyOutputVariable builds an OutputVariable with only the
// raw company result populated; all statistics fields are left empty.
func NewResultOnlyOutputVariable(name string, result []float64) OutputVariable {
	return OutputVariable{Name: name, Result: result}
}

// WithStatistics returns a copy of result with statistics' six
// aggregate fields merged in, keeping result's own Name/Result.
func WithStatistics(result, statistics OutputVariable) OutputVariable {
	return OutputVariable{
		Name:          result.Name,
		Result:        result.Result,
		BestInClass:   statistics.BestInClass,
		WorstInClass:  statistics.WorstInClass,
		Average:       statistics.Average,
		Median:        statistics.Median,
		LowerQuantile: statistics.LowerQuantile,
		UpperQuantile: statistics.UpperQuantile,
	}
}

// DefaultEmptyOutputVariable is returned by aggregation when the
// statistics cannot be computed (zero companies, or an infinite
// component in the inputs).
func DefaultEmptyOutputVariable() OutputVariable {
	return OutputVariable{}
}

// Output is the per-company map of KPI name to OutputVariable.
type Output struct {
	vars map[string]OutputVariable
}

// NewEmptyOutput returns an Output with no variables.
func NewEmptyOutput() Output {
	return Output{vars: make(map[string]OutputVariable)}
}

// OutputFromVars builds an Output from an already-populated map.
func OutputFromVars(vars map[string]OutputVariable) Output {
	return Output{vars: vars}
}

// AddVar inserts or replaces the variable keyed by its own Name.
func (o *Output) AddVar(v OutputVariable) {
	if o.vars == nil {
		o.vars = make(map[string]OutputVariable)
	}
	o.vars[v.Name] = v
}

// Result returns the raw result vector for a named KPI, if present.
func (o Output) Result(name string) ([]float64, bool) {
	v, ok := o.vars[name]
	if !ok {
		return nil, false
	}
	return v.Result, true
}

// Vars returns the underlying name → OutputVariable map. Callers must
// not mutate it.
func (o Output) Vars() map[string]OutputVariable {
	return o.vars
}

// Size returns the number of KPIs held.
func (o Output) Size() int {
	return len(o.vars)
}
