package bids

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrEmptyTemplate = errors.New("mapping entry without template")

// Entry pairs a naming key with the acquisitions it was computed for. Only
// the first acquisition is labeled; entries without acquisitions are skipped.
type Entry struct {
	Key          NamingKey `yaml:",inline"`
	Acquisitions []string  `yaml:"acquisitions"`
}

// Mapping is the heuristic output for one session. Entry order is kept and
// determines processing order.
type Mapping struct {
	// Subject and Session override the labels read from the platform.
	Subject string  `yaml:"subject,omitempty"`
	Session string  `yaml:"session,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// LoadMapping reads a mapping document. JSON input is accepted as YAML.
func LoadMapping(r io.Reader) (*Mapping, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Mapping
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("decode mapping: %w", err)
	}

	for i, e := range m.Entries {
		if e.Key.Template == "" {
			return nil, fmt.Errorf("entries[%d]: %w", i, ErrEmptyTemplate)
		}
	}

	return &m, nil
}
