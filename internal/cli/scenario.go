// Package cli loads scenarios and renders valuation views for the ddm command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// Scenario is a valuation request plus how to present it.
// YAML files use the same field names as the JSON API.
type Scenario struct {
	valuation.ValuationRequest `yaml:",inline"`

	Model    string `yaml:"model"`
	Currency string `yaml:"currency"`
}

// LoadScenario reads a YAML scenario file
func LoadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()

	return DecodeScenario(f)
}

// DecodeScenario parses a YAML scenario. Unknown fields are rejected.
func DecodeScenario(r io.Reader) (Scenario, error) {
	var s Scenario

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("failed to parse scenario: empty document")
		}
		return Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return s, nil
}
