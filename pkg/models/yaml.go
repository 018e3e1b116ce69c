package models

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// atomicFile is the on-disk shape of the atomic file format: a
// top-level `operations` sequence.
type atomicFile struct {
	Operations []Atomic `yaml:"operations"`
}

// ParseAtomicFile decodes the atomic file format into a flat Atomic
// slice, in file order.
func ParseAtomicFile(r io.Reader) ([]Atomic, error) {
	var doc atomicFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse atomic file: %w", err)
	}
	return doc.Operations, nil
}

// WriteAtomicFile encodes ops into the atomic file format.
func WriteAtomicFile(w io.Writer, ops []Atomic) error {
	doc := atomicFile{Operations: ops}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&doc)
}

// formulaFile is the on-disk shape of the intermediary formula file
// format: a bare sequence of {name, is_kpi, op}.
type formulaFile []Formula

// ParseFormulaFile decodes the intermediary formula format into a
// slice of Formulas, in file order.
func ParseFormulaFile(r io.Reader) ([]Formula, error) {
	var doc formulaFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse formula file: %w", err)
	}
	return doc, nil
}

// ParseInput decodes the input file format:
// `{vars: [{name, values, min_val?, max_val?}]}`.
func ParseInput(r io.Reader) (Input, error) {
	var doc inputFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Input{}, fmt.Errorf("parse input file: %w", err)
	}
	return NewInput(doc.Vars), nil
}

// outputFile is the on-disk shape of the output file format: a map of
// KPI name to OutputVariable.
type outputFile map[string]OutputVariable

// WriteOutput encodes an Output into the output file format.
func WriteOutput(w io.Writer, out Output) error {
	doc := make(outputFile, out.Size())
	for name, v := range out.Vars() {
		doc[name] = v
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&doc)
}

// ParseConfig decodes a BenchmarkingConfig document.
func ParseConfig(r io.Reader) (BenchmarkingConfig, error) {
	var cfg BenchmarkingConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return BenchmarkingConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
