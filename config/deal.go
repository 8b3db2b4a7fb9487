package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ismaeelS/WarCardGame/engine"
)

var ErrInvalidDeal = errors.New("invalid deal")

// Deal is a fixed pair of opening decks, top card first.
type Deal struct {
	First  []engine.Card
	Second []engine.Card
}

type dealFile struct {
	First  []string `yaml:"first"`
	Second []string `yaml:"second"`
}

// LoadDeal reads a YAML deal file of the form
//
//	first: [2C, 10H, 4D]
//	second: [9H, 2S]
func LoadDeal(path string) (*Deal, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deal file %s: %w", path, err)
	}
	d, err := ParseDeal(b)
	if err != nil {
		return nil, fmt.Errorf("deal file %s: %w", path, err)
	}
	return d, nil
}

// ParseDeal decodes a YAML deal. Unknown keys and repeated cards are
// rejected.
func ParseDeal(b []byte) (*Deal, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var raw dealFile
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeal, err)
	}

	first, err := engine.ParseCards(raw.First)
	if err != nil {
		return nil, fmt.Errorf("%w: first: %w", ErrInvalidDeal, err)
	}
	second, err := engine.ParseCards(raw.Second)
	if err != nil {
		return nil, fmt.Errorf("%w: second: %w", ErrInvalidDeal, err)
	}

	seen := make(map[engine.Card]struct{}, len(first)+len(second))
	for _, c := range append(append([]engine.Card{}, first...), second...) {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: card %s dealt twice", ErrInvalidDeal, c)
		}
		seen[c] = struct{}{}
	}
	return &Deal{First: first, Second: second}, nil
}

// MarshalYAML writes the deal in the LoadDeal format.
func (d Deal) MarshalYAML() (interface{}, error) {
	raw := dealFile{First: make([]string, len(d.First)), Second: make([]string, len(d.Second))}
	for i, c := range d.First {
		raw.First[i] = c.String()
	}
	for i, c := range d.Second {
		raw.Second[i] = c.String()
	}
	return raw, nil
}

// SaveDeal writes d to path so the game can be replayed with --deal.
func SaveDeal(path string, d Deal) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode deal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write deal file %s: %w", path, err)
	}
	return nil
}
