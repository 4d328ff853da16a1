//go:build integration

// Package harness runs declarative WordGrain pipeline scenarios: documents are
// loaded from testdata, optionally damaged with injected problems, then put
// through the validate, diff and stats steps with expectations checked at
// each step.
package harness

// Scenario is one integration test case, loaded from a YAML file.
type Scenario struct {
	// Name is a short, descriptive name for the scenario
	Name string `yaml:"name"`
	// Description provides additional context about what the scenario tests
	Description string `yaml:"description,omitempty"`
	// Source is the first (or only) document
	Source Input `yaml:"source"`
	// Target is the second document, required by diff and by stats comparisons
	Target *Input `yaml:"target,omitempty"`
	// Pipeline is the sequence of steps to execute
	Pipeline []Step `yaml:"pipeline"`
	// Skip provides a reason to skip this scenario (if set, scenario is skipped)
	Skip string `yaml:"skip,omitempty"`

	// filePath is the path to the scenario file (set by loader)
	filePath string
}

// Input names a testdata document and the problems to inject into it.
type Input struct {
	// Doc is the file name under the testdata directory
	Doc string `yaml:"doc"`
	// Problems are applied to the parsed document before any step runs
	Problems Problems `yaml:"problems,omitempty"`
}

// Problems defines the damage to inject into a document.
type Problems struct {
	// RemoveMeta deletes the named meta fields
	RemoveMeta []string `yaml:"remove-meta,omitempty"`
	// SetMeta overwrites meta fields
	SetMeta map[string]any `yaml:"set-meta,omitempty"`
	// SetGrain overwrites or deletes a field of one grain
	SetGrain []GrainEdit `yaml:"set-grain,omitempty"`
	// MoveGrain moves a grain from one index to another
	MoveGrain []GrainMove `yaml:"move-grain,omitempty"`
}

// GrainEdit changes one field of the grain at Index.
type GrainEdit struct {
	Index  int    `yaml:"index"`
	Field  string `yaml:"field"`
	Value  any    `yaml:"value,omitempty"`
	Delete bool   `yaml:"delete,omitempty"`
}

// GrainMove relocates the grain at From so that it ends up at To.
type GrainMove struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Step is a single pipeline step with its expectations.
type Step struct {
	// Name is one of: validate, diff, stats
	Name string `yaml:"name"`
	// Align selects the diff alignment: identity (default) or lcs
	Align string `yaml:"align,omitempty"`
	// Normalized matches grains by their folded normalized form when diffing
	Normalized bool `yaml:"normalized,omitempty"`
	// Expect holds the assertions for this step
	Expect Expectation `yaml:"expect"`
}

// Expectation lists what a step must produce. Unset fields are not checked.
type Expectation struct {
	Valid        *bool    `yaml:"valid,omitempty"`
	ErrorCount   *int     `yaml:"error-count,omitempty"`
	ErrorPaths   []string `yaml:"error-paths,omitempty"`
	HasChanges   *bool    `yaml:"has-changes,omitempty"`
	Added        *int     `yaml:"added,omitempty"`
	Deleted      *int     `yaml:"deleted,omitempty"`
	Modified     *int     `yaml:"modified,omitempty"`
	Moved        *int     `yaml:"moved,omitempty"`
	ChangedPaths []string `yaml:"changed-paths,omitempty"`
	GrainCount   *int     `yaml:"grain-count,omitempty"`
	CommonCount  *int     `yaml:"common-count,omitempty"`
}

// FilePath returns the file the scenario was loaded from.
func (s *Scenario) FilePath() string {
	return s.filePath
}
