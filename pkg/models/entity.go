package models

// Certificate is the opaque per-request identity value admission
// control compares by equality. Real mTLS certificate extraction is
// out of scope; this repo's HTTP layer stands in a bearer-token
// string here instead.
type Certificate string

// Company is one data-provider: its admission identity, its private
// Input, and the Output it has been assigned once a benchmark run
// completes.
type Company struct {
	ID          string
	Certificate Certificate
	InputData   Input
	ResultsData Output
}

// NewCompany returns a Company with no input/results yet.
func NewCompany(id string, cert Certificate) Company {
	return Company{ID: id, Certificate: cert}
}

// DoesParticipate reports whether this company has supplied any input
// variables yet (the k-anonymity participation check consults this).
func (c Company) DoesParticipate() bool {
	return c.InputData.Size() != 0
}

// Analyst is the single coordinator identity allowed to upload
// formulas/atomics and trigger a benchmark run.
type Analyst struct {
	Certificate Certificate
}
