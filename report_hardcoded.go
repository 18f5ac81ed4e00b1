package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// hardcodedHit records a user-visible string found in source that bypasses
// the translation layer.
type hardcodedHit struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// Heuristic patterns for hardcoded English strings in TS/TSX files.
var (
	// JSX props that should use a translation lookup instead of a literal.
	propPattern = regexp.MustCompile(`(?:^|\s)(title|label|placeholder|accessibilityLabel)="([^"]{3,})"`)
	// Values that are clearly not user-visible copy.
	skipValuePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$|^\d|^http|^/|^#|^\$|^\{`)
	// Single-word Title Case values (e.g., "Breakfast", "Settings").
	titleCaseWord = regexp.MustCompile(`^[A-Z][a-z]{2,}$`)
	// Text between JSX tags on the same line: <Text>Save changes</Text>.
	jsxTextPattern = regexp.MustCompile(`>\s*([A-Z][a-zA-Z ]{2,}?)\s*</`)
	// Alert.alert('Title', 'Message') literals.
	alertPattern = regexp.MustCompile(`Alert\.alert\(\s*['"]([A-Z][^'"]{2,})['"]`)
)

func runHardcoded(args []string) error {
	fs := pflag.NewFlagSet("hardcoded", pflag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportHardcoded(afero.NewOsFs(), LoadConfig(root), root, *format)
}

func reportHardcoded(fsys afero.Fs, cfg Config, root, format string) error {
	hits, err := findHardcoded(fsys, cfg, root)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No hardcoded strings found.")
		return nil
	}

	fmt.Printf("Found %d potential hardcoded strings:\n\n", len(hits))
	for _, h := range hits {
		fmt.Printf("  %s:%d\n    %s\n\n", h.File, h.Line, h.Context)
	}
	return nil
}

// findHardcoded scans the source tree for user-visible literals that skip
// the translation layer. Advisory only: template-literal strings and
// multi-line JSX text have no reliable line-level pattern and are not
// detected.
func findHardcoded(fsys afero.Fs, cfg Config, root string) ([]hardcodedHit, error) {
	scanner := NewScanner(cfg.Funcs, cfg.Extensions)
	srcDir := filepath.Join(root, cfg.SourceDir)
	files, err := scanner.sourceFiles(fsys, srcDir)
	if err != nil {
		return nil, err
	}

	var hits []hardcodedHit
	for _, file := range files {
		base := filepath.Base(file)
		if strings.Contains(base, ".spec.") || strings.Contains(base, ".test.") {
			continue
		}
		data, err := afero.ReadFile(fsys, file)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, file)
		if err != nil {
			rel = file
		}

		for i, line := range strings.Split(string(data), "\n") {
			trimmed := strings.TrimSpace(line)
			// Lines that already go through the translation layer.
			if strings.Contains(trimmed, "t(") {
				continue
			}

			found := false
			for _, m := range propPattern.FindAllStringSubmatch(trimmed, -1) {
				value := m[2]
				if skipValuePattern.MatchString(value) {
					continue
				}
				if strings.Contains(value, " ") || titleCaseWord.MatchString(value) {
					found = true
					break
				}
			}
			if !found {
				for _, m := range jsxTextPattern.FindAllStringSubmatch(trimmed, -1) {
					if !skipValuePattern.MatchString(strings.TrimSpace(m[1])) {
						found = true
						break
					}
				}
			}
			if !found && alertPattern.MatchString(trimmed) {
				found = true
			}

			if found {
				hits = append(hits, hardcodedHit{File: rel, Line: i + 1, Context: trimmed})
			}
		}
	}
	return hits, nil
}
