// Package snapshot compares a tree of generated Markdown against a stored copy.
package snapshot

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// MismatchKind classifies a difference between two trees.
type MismatchKind string

const (
	// Missing means the file exists only in the expected tree.
	Missing MismatchKind = "missing"
	// Extra means the file exists only in the actual tree.
	Extra MismatchKind = "extra"
	// Different means both files exist with different content.
	Different MismatchKind = "different"
)

// Mismatch is one differing file.
type Mismatch struct {
	Kind MismatchKind
	Path string
	// Diff is a unified diff from expected to actual, set for Different.
	Diff string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Kind, m.Path)
}

// Compare matches every file of actual and expected by relative path.
// Mismatches are sorted by path.
func Compare(actual, expected afero.Fs) ([]Mismatch, error) {
	actualFiles, err := listFiles(actual)
	if err != nil {
		return nil, fmt.Errorf("list actual: %w", err)
	}
	expectedFiles, err := listFiles(expected)
	if err != nil {
		return nil, fmt.Errorf("list expected: %w", err)
	}

	var mismatches []Mismatch
	for p := range expectedFiles {
		if !actualFiles[p] {
			mismatches = append(mismatches, Mismatch{Kind: Missing, Path: p})
		}
	}
	for p := range actualFiles {
		if !expectedFiles[p] {
			mismatches = append(mismatches, Mismatch{Kind: Extra, Path: p})
			continue
		}
		m, err := compareFile(actual, expected, p)
		if err != nil {
			return nil, err
		}
		if m != nil {
			mismatches = append(mismatches, *m)
		}
	}

	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Path < mismatches[j].Path
	})
	return mismatches, nil
}

// NewDirFs exposes a directory on disk as an afero.Fs rooted at dir.
func NewDirFs(dir string) (afero.Fs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func compareFile(actual, expected afero.Fs, p string) (*Mismatch, error) {
	got, err := afero.ReadFile(actual, p)
	if err != nil {
		return nil, fmt.Errorf("read actual %s: %w", p, err)
	}
	want, err := afero.ReadFile(expected, p)
	if err != nil {
		return nil, fmt.Errorf("read expected %s: %w", p, err)
	}
	if bytes.Equal(got, want) {
		return nil, nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(string(got)),
		FromFile: "expected/" + p,
		ToFile:   "actual/" + p,
		Context:  3,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", p, err)
	}
	return &Mismatch{Kind: Different, Path: p, Diff: diff}, nil
}

// listFiles returns the slash-separated relative paths of all regular files.
func listFiles(fsys afero.Fs) (map[string]bool, error) {
	files := make(map[string]bool)
	err := afero.Walk(fsys, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel("/", p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = true
		return nil
	})
	return files, err
}
