// Package team models the roster the assignment engine draws on and loads
// roster files.
package team

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Member is one person on the roster. Name is the unique key used by
// assignments.
type Member struct {
	Name   string   `yaml:"name"`
	Role   string   `yaml:"role"`
	Skills []string `yaml:"skills"`
}

// HasSkill reports whether the member lists the skill, case-insensitively.
func (m Member) HasSkill(skill string) bool {
	for _, s := range m.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// Roster is an ordered member list. Order matters: assignment ties fall
// back to roster order.
type Roster []Member

// Snapshot returns a deep copy. The pipeline takes exactly one snapshot per
// batch so concurrent roster edits are never visible mid-run.
func (r Roster) Snapshot() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for i, m := range r {
		out[i] = m
		out[i].Skills = append([]string(nil), m.Skills...)
	}
	return out
}

// Find returns the member with the given name, case-insensitively.
func (r Roster) Find(name string) (Member, bool) {
	for _, m := range r {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Member{}, false
}

// rosterFile models the on-disk YAML document.
type rosterFile struct {
	Members []Member `yaml:"members"`
}

// Load reads a roster from a YAML file of the form
// `members: [{name, role, skills}]`.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("team: read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roster YAML.
func Parse(data []byte) (Roster, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("team: parse roster: %w", err)
	}
	seen := make(map[string]bool, len(file.Members))
	for i, m := range file.Members {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("team: member %d has no name", i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("team: duplicate member %s", name)
		}
		seen[key] = true
		file.Members[i].Name = name
	}
	return Roster(file.Members), nil
}
