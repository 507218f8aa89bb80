package models

import (
	"encoding/json"
	"strings"
)

// Preferences is the single canonical shape for ride preferences. Historical
// data stored them either as a flag map or a bare array of labels; both forms
// are accepted on input and normalized here before anything is persisted.
type Preferences struct {
	Smoker  bool     `json:"fumeur"`
	Animals bool     `json:"animaux"`
	Tags    []string `json:"tags,omitempty"`
}

// ParsePreferences accepts the loose legacy encodings: a flag object
// ({"fumeur":true,...}), an array of labels, or empty input.
func ParsePreferences(raw []byte) (Preferences, error) {
	var p Preferences
	if len(raw) == 0 {
		return p, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return p, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var labels []string
		if err := json.Unmarshal(raw, &labels); err != nil {
			return p, err
		}
		for _, l := range labels {
			p.addLabel(l)
		}
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	p.normalizeTags()
	return p, nil
}

// Encode returns the canonical JSON stored on the ride row.
func (p Preferences) Encode() string {
	p.normalizeTags()
	b, _ := json.Marshal(p)
	return string(b)
}

func (p *Preferences) addLabel(label string) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
	case "fumeur":
		p.Smoker = true
	case "animaux":
		p.Animals = true
	default:
		p.Tags = append(p.Tags, strings.TrimSpace(label))
	}
}

func (p *Preferences) normalizeTags() {
	if len(p.Tags) == 0 {
		return
	}
	seen := make(map[string]bool, len(p.Tags))
	out := p.Tags[:0]
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	p.Tags = out
}
