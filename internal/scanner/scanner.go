// Package scanner discovers template files on disk for the CLI's render
// command, given a root directory and one or more doublestar glob
// patterns (e.g. "**/*.tmpl").
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls how Scan walks a root directory.
type Config struct {
	// Root is the directory patterns are matched relative to.
	Root string
	// Patterns are doublestar glob patterns, e.g. "**/*.tmpl".
	Patterns []string
}

// Scanner finds template files matching a set of doublestar patterns
// under a root directory.
type Scanner struct {
	root     string
	patterns []string
}

// New builds a Scanner from cfg. An empty Root defaults to the current
// working directory; empty Patterns defaults to "**/*.tmpl".
func New(cfg Config) (*Scanner, error) {
	root := cfg.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("scanner: get working directory: %w", err)
		}
		root = cwd
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"**/*.tmpl"}
	}

	return &Scanner{root: root, patterns: patterns}, nil
}

// Scan returns the absolute paths of every file under the Scanner's root
// matching any of its patterns, deduplicated and sorted.
func (s *Scanner) Scan() ([]string, error) {
	fsys := os.DirFS(s.root)

	var matches []string
	seen := make(map[string]bool)
	for _, pattern := range s.patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("scanner: invalid pattern %q", pattern)
		}

		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("scanner: glob %q: %w", pattern, err)
		}

		for _, rel := range found {
			abs := filepath.Join(s.root, rel)
			if seen[abs] {
				continue
			}
			seen[abs] = true
			matches = append(matches, abs)
		}
	}

	slices.Sort(matches)
	return matches, nil
}
