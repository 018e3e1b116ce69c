package models

// BenchmarkingConfig is the analyst-supplied run configuration:
// display metadata, the k-anonymity gate, and the evaluation-build
// knobs carried through for upload-format compatibility but left
// inert by this implementation — EvalMode/Offload describe a
// secure-hardware offload path that is out of scope here.
type BenchmarkingConfig struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	KAnonymity  uint64   `yaml:"k_anonymity"`
	EvalMode    bool     `yaml:"eval_mode"`
	Offload     []string `yaml:"offload"`
}
