package domain

import (
	"fmt"
	"strings"
)

// DefaultPhase is the mapping key used when a phase does not match.
const DefaultPhase = "default"

// BranchMapping maps lowercased phase names to branch names.
// It is read-only once built.
type BranchMapping map[string]string

// NewBranchMapping builds a mapping with lowercased, trimmed keys.
// Entries with an empty branch are dropped.
func NewBranchMapping(entries map[string]string) BranchMapping {
	m := make(BranchMapping, len(entries))
	for phase, branch := range entries {
		branch = strings.TrimSpace(branch)
		if branch == "" {
			continue
		}
		m[normalisePhase(phase)] = branch
	}
	return m
}

// Resolve returns the branch for phase, falling back to the default entry.
func (m BranchMapping) Resolve(phase string) (string, error) {
	if key := normalisePhase(phase); key != "" {
		if branch, ok := m[key]; ok {
			return branch, nil
		}
	}
	branch, ok := m[DefaultPhase]
	if !ok {
		return "", fmt.Errorf("resolve phase %q: %w", phase, ErrNoDefaultBranch)
	}
	return branch, nil
}

// Default returns the default branch, or an empty string.
func (m BranchMapping) Default() string {
	return m[DefaultPhase]
}

// HasDefault reports whether the default entry is present.
func (m BranchMapping) HasDefault() bool {
	_, ok := m[DefaultPhase]
	return ok
}

func normalisePhase(phase string) string {
	return strings.ToLower(strings.TrimSpace(phase))
}
