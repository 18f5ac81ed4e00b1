package main

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// keyReference records where a translation key is used.
type keyReference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Scanner finds translation key references in application source text.
// It is deliberately a token-level heuristic, not a parser: keys built by
// concatenation or interpolation are invisible to it, so its output is a
// lower bound on the keys the app uses at runtime.
type Scanner struct {
	funcs   []string
	extSet  map[string]bool
	pattern *regexp.Regexp
}

// NewScanner builds a scanner for the given translation function names
// (e.g. t, translate) and source file extensions. The key must be a
// simple string literal; a default-value second argument is tolerated.
func NewScanner(funcs, exts []string) *Scanner {
	alts := make([]string, len(funcs))
	for i, f := range funcs {
		alts[i] = regexp.QuoteMeta(f)
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}
	// t('a.b'), translate("a.b", 'Default'), $t(`a.b`) — the literal must
	// be the complete first argument, so t('x' + suffix) never matches.
	pattern := regexp.MustCompile(
		`(?:^|[^a-zA-Z0-9_])(?:` + strings.Join(alts, "|") + `)\(\s*['"` + "`" + `]([a-zA-Z0-9_.:-]+)['"` + "`" + `]\s*[,)]`)
	return &Scanner{funcs: funcs, extSet: extSet, pattern: pattern}
}

// Directories never worth scanning.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	"vendor":       true,
	"__tests__":    true,
	"ios":          true,
	"android":      true,
}

// sourceFiles walks the source tree and returns matching file paths in
// sorted order.
func (s *Scanner) sourceFiles(fsys afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if s.extSet[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// ScanUsage walks the source tree and returns every literal key passed to
// a translation lookup call, with its usage sites.
func (s *Scanner) ScanUsage(fsys afero.Fs, root string) (map[string][]keyReference, error) {
	files, err := s.sourceFiles(fsys, root)
	if err != nil {
		return nil, err
	}
	refs := make(map[string][]keyReference)
	for _, file := range files {
		data, err := afero.ReadFile(fsys, file)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, file)
		if err != nil {
			rel = file
		}
		for i, line := range strings.Split(string(data), "\n") {
			for _, m := range s.pattern.FindAllStringSubmatch(line, -1) {
				refs[m[1]] = append(refs[m[1]], keyReference{File: rel, Line: i + 1})
			}
		}
	}
	return refs, nil
}

// dynamicKeyRef is a template-literal key pattern found in source, e.g.
// t(`meals.${type}.label`). The scanner cannot resolve such keys; the
// dynamic report instead shows which master keys each pattern covers.
type dynamicKeyRef struct {
	Pattern string // template with interpolations collapsed to {}
	Ref     keyReference
	Regex   *regexp.Regexp
}

var (
	backtickLiteral     = regexp.MustCompile("`([^`]*)`")
	interpolationMarker = regexp.MustCompile(`\$\{[^}]*\}`)
	staticKeyPrefix     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*\.`)
)

// extractDynamicPatterns finds template-literal keys on a source line.
// Only templates with a static dotted prefix qualify; `${x}.key` tells us
// nothing about which catalog subtree is addressed.
func extractDynamicPatterns(line string, ref keyReference) []dynamicKeyRef {
	var out []dynamicKeyRef
	for _, m := range backtickLiteral.FindAllStringSubmatch(line, -1) {
		tpl := m[1]
		if !strings.Contains(tpl, "${") || !staticKeyPrefix.MatchString(tpl) {
			continue
		}
		re := templateToKeyRegex(tpl)
		if re == nil {
			continue
		}
		out = append(out, dynamicKeyRef{
			Pattern: interpolationMarker.ReplaceAllString(tpl, "{}"),
			Ref:     ref,
			Regex:   re,
		})
	}
	return out
}

// templateToKeyRegex converts a template-literal key into a regex over
// concrete keys: each interpolation matches one key-segment fragment.
func templateToKeyRegex(tpl string) *regexp.Regexp {
	parts := interpolationMarker.Split(tpl, -1)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile("^" + strings.Join(quoted, `[a-zA-Z0-9_-]+`) + "$")
	if err != nil {
		return nil
	}
	return re
}

// FindDynamicPatterns scans source files for template-literal key
// patterns.
func (s *Scanner) FindDynamicPatterns(fsys afero.Fs, root string) ([]dynamicKeyRef, error) {
	files, err := s.sourceFiles(fsys, root)
	if err != nil {
		return nil, err
	}
	var out []dynamicKeyRef
	for _, file := range files {
		data, err := afero.ReadFile(fsys, file)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, file)
		if err != nil {
			rel = file
		}
		for i, line := range strings.Split(string(data), "\n") {
			out = append(out, extractDynamicPatterns(line, keyReference{File: rel, Line: i + 1})...)
		}
	}
	return out, nil
}
