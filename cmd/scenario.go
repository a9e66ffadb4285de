// cmd/scenario.go
package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vialsim/vialsim/sim"
)

// ScenarioSpec is the YAML shape of a scenario file: global vial
// parameters plus one entry per person sharing the vials.
type ScenarioSpec struct {
	VialCapacity float64      `yaml:"vial_capacity"`
	Horizon      int64        `yaml:"horizon"`
	People       []sim.Person `yaml:"people"`
}

// LoadScenarioSpec reads and parses a scenario file. Unknown YAML
// fields are rejected so typos fail loudly instead of silently
// falling back to defaults.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var spec ScenarioSpec
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Validate checks the global parameters and every person entry.
func (s *ScenarioSpec) Validate() error {
	if err := s.Params().Validate(); err != nil {
		return err
	}
	if len(s.People) == 0 {
		return fmt.Errorf("%w: at least one person required", sim.ErrEmptySpace)
	}
	for i, p := range s.People {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("person[%d]: %w", i, err)
		}
	}
	return nil
}

// Params returns the simulation parameters of the scenario.
func (s *ScenarioSpec) Params() sim.Params {
	return sim.Params{VialCapacity: s.VialCapacity, Horizon: s.Horizon}
}

// Persons returns the person list with empty names defaulted to their
// declaration position.
func (s *ScenarioSpec) Persons() []sim.Person {
	persons := make([]sim.Person, len(s.People))
	copy(persons, s.People)
	for i := range persons {
		if persons[i].Name == "" {
			persons[i].Name = fmt.Sprintf("person%d", i)
		}
	}
	return persons
}
