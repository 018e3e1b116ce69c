package algorithm

import (
	"io"
	"sort"

	"github.com/hwpib/benchmarking-engine/pkg/models"
)

// Algorithm is an immutable, topologically sorted program: the
// execution list never references a name before every one of its
// dependencies has already appeared earlier in the list, except for
// required inputs, which are not in the list at all. Once built
// it is safe to share across goroutines for read-only use — RunCompany
// never mutates it.
type Algorithm struct {
	execution      []models.Atomic
	byName         map[string]*models.Atomic
	kpis           []string
	nonKPIs        map[string]struct{}
	requiredInputs map[string]struct{}
}

// color marks a name's state during the three-color DFS topological
// sort.
type color int

const (
	white color = iota // unvisited
	gray               // on the current recursion stack
	black              // finished
)

// Load parses an atomic file and builds an Algorithm from it: it
// rejects an empty or duplicate-named atomic set, synthesizes a
// required-input placeholder atomic for every dependency with no
// matching definition, topologically sorts the whole set by a
// three-color depth-first search (ties broken by first-encountered
// order), and strips required-input placeholders back out of the
// execution list before returning.
func Load(r io.Reader) (*Algorithm, error) {
	ops, err := models.ParseAtomicFile(r)
	if err != nil {
		return nil, newLoadError("%v", err)
	}
	return build(ops)
}

// LoadAtomics builds an Algorithm directly from an in-memory atomic
// slice, as used by formula lowering's output rather than a
// round-trip through the wire format.
func LoadAtomics(ops []models.Atomic) (*Algorithm, error) {
	return build(ops)
}

func build(ops []models.Atomic) (*Algorithm, error) {
	if len(ops) == 0 {
		return nil, newLoadError("atomic set is empty")
	}

	byName := make(map[string]*models.Atomic, len(ops))
	order := make([]string, 0, len(ops))
	for i := range ops {
		a := &ops[i]
		if a.Name == "" {
			return nil, newLoadError("atomic has an empty name")
		}
		if _, dup := byName[a.Name]; dup {
			return nil, newLoadError("duplicate atomic name %q", a.Name)
		}
		byName[a.Name] = a
		order = append(order, a.Name)
	}

	required := make(map[string]struct{})
	for _, a := range ops {
		for _, dep := range a.Deps {
			if _, ok := byName[dep]; ok {
				continue
			}
			if _, already := required[dep]; already {
				continue
			}
			required[dep] = struct{}{}
			synth := models.NewRequiredInput(dep)
			byName[dep] = &synth
			order = append(order, dep)
		}
	}

	colors := make(map[string]color, len(order))
	var sorted []string
	for _, name := range order {
		if colors[name] != white {
			continue
		}
		if err := dfsTopoSort(name, byName, colors, &sorted); err != nil {
			return nil, err
		}
	}

	execution := make([]models.Atomic, 0, len(sorted))
	nonKPIs := make(map[string]struct{})
	for _, name := range sorted {
		if _, isRequired := required[name]; isRequired {
			continue
		}
		a := *byName[name]
		execution = append(execution, a)
		if !a.IsKPI {
			nonKPIs[a.Name] = struct{}{}
		}
	}

	// KPIs are reported in declared order, not the execution list's
	// topological order, so a caller always sees them in the order the
	// analyst defined them.
	var kpis []string
	for _, name := range order {
		if _, isRequired := required[name]; isRequired {
			continue
		}
		if byName[name].IsKPI {
			kpis = append(kpis, name)
		}
	}

	return &Algorithm{
		execution:      execution,
		byName:         byName,
		kpis:           kpis,
		nonKPIs:        nonKPIs,
		requiredInputs: required,
	}, nil
}

// dfsTopoSort visits name and everything it (transitively) depends on,
// appending names to *sorted in finish order (so *sorted ends up in
// dependency-before-dependent order) and raising a LoadError on a
// cycle: a dependency still marked gray is on the current recursion
// stack, meaning it depends on name through some chain back to itself.
func dfsTopoSort(name string, byName map[string]*models.Atomic, colors map[string]color, sorted *[]string) error {
	colors[name] = gray
	a, ok := byName[name]
	if !ok {
		return newLoadError("dependency %q has no definition", name)
	}
	for _, dep := range a.Deps {
		switch colors[dep] {
		case white:
			if err := dfsTopoSort(dep, byName, colors, sorted); err != nil {
				return err
			}
		case gray:
			return newLoadError("cyclic dependency through %q", dep)
		case black:
			// already finished, nothing to do
		}
	}
	colors[name] = black
	*sorted = append(*sorted, name)
	return nil
}

// Execution returns the topologically sorted, required-input-stripped
// list of atomics to run, in order.
func (alg *Algorithm) Execution() []models.Atomic {
	return alg.execution
}

// KPIs returns the names of every atomic marked IsKPI, in declared
// order.
func (alg *Algorithm) KPIs() []string {
	out := make([]string, len(alg.kpis))
	copy(out, alg.kpis)
	return out
}

// NonKPIs returns the set of names of defined, non-KPI atomics (used by
// RunCompany to decide what to strip from a company's final Output).
func (alg *Algorithm) NonKPIs() map[string]struct{} {
	return alg.nonKPIs
}

// RequiredInputs returns the set of variable names the algorithm
// expects every company's Input to supply.
func (alg *Algorithm) RequiredInputs() map[string]struct{} {
	out := make(map[string]struct{}, len(alg.requiredInputs))
	for name := range alg.requiredInputs {
		out[name] = struct{}{}
	}
	return out
}

// Lookup returns the atomic named name, if any.
func (alg *Algorithm) Lookup(name string) (models.Atomic, bool) {
	a, ok := alg.byName[name]
	if !ok {
		return models.Atomic{}, false
	}
	return *a, true
}

// VerifyInput reports, as an InputError, every required-input name
// missing from in. A nil return means in supplies every variable the
// algorithm needs.
func (alg *Algorithm) VerifyInput(in models.Input) error {
	var missing []string
	for name := range alg.requiredInputs {
		if !in.HasVar(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &InputError{Missing: missing}
}
