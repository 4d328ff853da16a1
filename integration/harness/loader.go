//go:build integration

package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/wordgrain/wgtools/differ"
)

// LoadScenario loads a single scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to read scenario file %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("harness: failed to parse scenario file %s: %w", path, err)
	}
	scenario.filePath = path

	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("harness: invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadAllScenarios loads every .yaml and .yml scenario under dir.
func LoadAllScenarios(dir string) ([]*Scenario, error) {
	var scenarios []*Scenario

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		scenario, err := LoadScenario(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, scenario)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("harness: failed to load scenarios from %s: %w", dir, err)
	}
	return scenarios, nil
}

// ValidateScenario validates a scenario's structure and required fields.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}
	if s.Source.Doc == "" {
		return fmt.Errorf("scenario '%s' must name a source document", s.Name)
	}
	if len(s.Pipeline) == 0 {
		return fmt.Errorf("scenario '%s' must have at least one pipeline step", s.Name)
	}
	for i, step := range s.Pipeline {
		if err := validateStep(s, &step, i); err != nil {
			return fmt.Errorf("scenario '%s': %w", s.Name, err)
		}
	}
	return nil
}

func validateStep(s *Scenario, step *Step, index int) error {
	switch step.Name {
	case "validate", "stats":
	case "diff":
		if s.Target == nil {
			return fmt.Errorf("step %d (diff) requires a target document", index+1)
		}
		if step.Align != "" {
			if _, err := differ.ParseAlignment(step.Align); err != nil {
				return fmt.Errorf("step %d: %w", index+1, err)
			}
		}
	case "":
		return fmt.Errorf("step %d must have a name", index+1)
	default:
		return fmt.Errorf("step %d has unknown name '%s'", index+1, step.Name)
	}
	return nil
}
