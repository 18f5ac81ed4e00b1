package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// IssueKind classifies a quality finding.
type IssueKind string

const (
	TypeMismatch        IssueKind = "TYPE_MISMATCH"
	MissingKey          IssueKind = "MISSING"
	EmptyValue          IssueKind = "EMPTY"
	SuspiciousValue     IssueKind = "SUSPICIOUS"
	PlaceholderMismatch IssueKind = "PLACEHOLDER_MISMATCH"
	LengthMismatch      IssueKind = "LENGTH_MISMATCH"
)

// Issue is one quality finding at a catalog path.
type Issue struct {
	Path   string    `json:"path"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

// IsError reports whether the finding fails an audit. SUSPICIOUS and
// LENGTH_MISMATCH are advisory.
func (i Issue) IsError() bool {
	switch i.Kind {
	case SuspiciousValue, LengthMismatch:
		return false
	}
	return true
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// Placeholders returns the `{{token}}` markers in a string as a sorted
// list, so two strings can be compared order-independently.
func Placeholders(s string) []string {
	var tokens []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
		tokens = append(tokens, m[1])
	}
	sort.Strings(tokens)
	return tokens
}

// Verifier performs recursive structural and semantic comparison of a
// target catalog against the master. It only enumerates findings; the
// report layer decides pass/fail.
type Verifier struct {
	allow map[string]bool
}

// NewVerifier builds a verifier with the given suspicious-value allow list
// (matched case-insensitively).
func NewVerifier(allowList []string) *Verifier {
	allow := make(map[string]bool, len(allowList))
	for _, a := range allowList {
		allow[strings.ToLower(a)] = true
	}
	return &Verifier{allow: allow}
}

// Verify compares target to master and returns all findings sorted by
// path, then kind.
func (v *Verifier) Verify(master, target *Node) []Issue {
	var issues []Issue
	v.verifyNode("", master, target, &issues)
	sortIssues(issues)
	return issues
}

func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Kind < issues[j].Kind
	})
}

func (v *Verifier) verifyNode(path string, master, target *Node, issues *[]Issue) {
	if master.Kind != target.Kind {
		*issues = append(*issues, Issue{
			Path:   path,
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("master is %s, target is %s", master.Kind, target.Kind),
		})
		return
	}
	switch master.Kind {
	case Mapping:
		for _, k := range master.Keys() {
			childPath := joinPath(path, k)
			tc := target.Child(k)
			if tc == nil {
				*issues = append(*issues, Issue{Path: childPath, Kind: MissingKey})
				continue
			}
			v.verifyNode(childPath, master.Child(k), tc, issues)
		}
	case Sequence:
		if len(master.Items) != len(target.Items) {
			*issues = append(*issues, Issue{
				Path:   path,
				Kind:   LengthMismatch,
				Detail: fmt.Sprintf("master has %d items, target has %d", len(master.Items), len(target.Items)),
			})
		}
		for i := 0; i < min(len(master.Items), len(target.Items)); i++ {
			v.verifyNode(fmt.Sprintf("%s[%d]", path, i), master.Items[i], target.Items[i], issues)
		}
	case Scalar:
		v.verifyLeaf(path, master, target, issues)
	}
}

func (v *Verifier) verifyLeaf(path string, master, target *Node, issues *[]Issue) {
	if master.Type != StringScalar || target.Type != StringScalar {
		return
	}
	if target.Value == "" {
		*issues = append(*issues, Issue{Path: path, Kind: EmptyValue})
		return
	}
	if v.suspicious(path, target.Value) {
		*issues = append(*issues, Issue{
			Path:   path,
			Kind:   SuspiciousValue,
			Detail: fmt.Sprintf("value %q repeats its key", target.Value),
		})
	}
	mp := Placeholders(master.Value)
	tp := Placeholders(target.Value)
	if !stringSlicesEqual(mp, tp) {
		*issues = append(*issues, Issue{
			Path:   path,
			Kind:   PlaceholderMismatch,
			Detail: fmt.Sprintf("master has %v, target has %v", mp, tp),
		})
	}
}

// suspicious reports whether a leaf value looks like an untranslated key:
// it equals, case-insensitively, its full dotted path or the last path
// segment, and is not allow-listed. Hand-tuned heuristic, advisory only.
func (v *Verifier) suspicious(path, value string) bool {
	lower := strings.ToLower(value)
	if v.allow[lower] {
		return false
	}
	if lower == strings.ToLower(path) {
		return true
	}
	segments := strings.Split(path, ".")
	return lower == strings.ToLower(segments[len(segments)-1])
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VerifyLocalizedArrays audits locale-keyed array objects inside the
// master catalog (e.g. a "howItWorks" field holding one steps array per
// locale). Every configured locale must have an entry, and every entry's
// length must match the master locale's array.
func (v *Verifier) VerifyLocalizedArrays(master *Node, masterLocale string, locales []string) []Issue {
	var issues []Issue
	walkLocalizedArrays("", master, masterLocale, locales, &issues)
	sortIssues(issues)
	return issues
}

func walkLocalizedArrays(path string, node *Node, masterLocale string, locales []string, issues *[]Issue) {
	if node.Kind != Mapping {
		return
	}
	if isLocalizedArray(node) {
		ref := node.Child(masterLocale)
		for _, locale := range locales {
			childPath := joinPath(path, locale)
			entry := node.Child(locale)
			if entry == nil {
				*issues = append(*issues, Issue{
					Path:   childPath,
					Kind:   MissingKey,
					Detail: "no entry for locale " + locale,
				})
				continue
			}
			if ref != nil && len(entry.Items) != len(ref.Items) {
				*issues = append(*issues, Issue{
					Path:   childPath,
					Kind:   LengthMismatch,
					Detail: fmt.Sprintf("%d items, %s has %d", len(entry.Items), masterLocale, len(ref.Items)),
				})
			}
		}
		return
	}
	for _, k := range node.Keys() {
		walkLocalizedArrays(joinPath(path, k), node.Child(k), masterLocale, locales, issues)
	}
}

// isLocalizedArray reports whether a mapping holds per-locale arrays:
// every key parses as a known language tag and every value is an array.
func isLocalizedArray(node *Node) bool {
	keys := node.Keys()
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if _, err := language.Parse(k); err != nil {
			return false
		}
		if node.Child(k).Kind != Sequence {
			return false
		}
	}
	return true
}
