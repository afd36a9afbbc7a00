package scenario

import (
	"encoding/json"
	"fmt"
	"os"
)

// Decode validates data against the scenario schema, unmarshals it and runs
// the structural checks.
func Decode(data []byte) (*Scenario, error) {
	v, err := DefaultValidator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateJSON(data); err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
