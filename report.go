package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

var (
	headingColor = color.New(color.Bold, color.FgCyan).SprintFunc()
	okColor      = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.Bold, color.FgYellow).SprintFunc()
	failColor    = color.New(color.FgRed).SprintFunc()
)

// LocaleReport holds one target locale's findings.
type LocaleReport struct {
	Diff   DiffResult `json:"diff"`
	Issues []Issue    `json:"issues,omitempty"`
}

// AuditReport aggregates one run's findings across locales, plus the
// code-usage audit against the master catalog.
type AuditReport struct {
	Master       string                   `json:"master"`
	Locales      map[string]*LocaleReport `json:"locales"`
	MasterIssues []Issue                  `json:"masterIssues,omitempty"`
	UsedMissing  []string                 `json:"usedMissing,omitempty"` // referenced in code, absent from master
	UnusedKeys   []string                 `json:"unusedKeys,omitempty"`  // in master, never referenced
	InputErrors  map[string]string        `json:"inputErrors,omitempty"` // locale -> load/parse error
}

// NewAuditReport returns an empty report for the given master locale.
func NewAuditReport(master string) *AuditReport {
	return &AuditReport{
		Master:      master,
		Locales:     make(map[string]*LocaleReport),
		InputErrors: make(map[string]string),
	}
}

// Passed reports whether the audit found no error-severity issues.
// Unused keys and warning-tier findings never fail a run; unreadable
// locale files always do.
func (r *AuditReport) Passed() bool {
	if len(r.InputErrors) > 0 || len(r.UsedMissing) > 0 {
		return false
	}
	for _, issue := range r.MasterIssues {
		if issue.IsError() {
			return false
		}
	}
	for _, lr := range r.Locales {
		if !lr.Diff.Clean() {
			return false
		}
		for _, issue := range lr.Issues {
			if issue.IsError() {
				return false
			}
		}
	}
	return true
}

// Save writes the machine-readable report artifact atomically.
// encoding/json sorts the locale map keys, so output is stable.
func (r *AuditReport) Save(fsys afero.Fs, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := writeFileAtomic(fsys, path, append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Print writes the human-readable report grouped by locale and kind.
func (r *AuditReport) Print(w io.Writer) {
	codes := make([]string, 0, len(r.Locales)+len(r.InputErrors))
	for code := range r.Locales {
		codes = append(codes, code)
	}
	for code := range r.InputErrors {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		fmt.Fprintln(w, headingColor("== "+code+" =="))
		if msg, ok := r.InputErrors[code]; ok {
			fmt.Fprintf(w, "  %s %s\n", failColor("INPUT ERROR"), msg)
			continue
		}
		lr := r.Locales[code]
		printPathSet(w, "missing keys", lr.Diff.Missing)
		printPathSet(w, "stale keys", lr.Diff.Extra)
		printPathSet(w, "empty values", lr.Diff.Empty)
		printIssues(w, lr.Issues)
	}

	if len(r.MasterIssues) > 0 {
		fmt.Fprintln(w, headingColor("== "+r.Master+" (master) =="))
		printIssues(w, r.MasterIssues)
	}

	fmt.Fprintln(w, headingColor("== code usage =="))
	printPathSet(w, "used keys missing from master", r.UsedMissing)
	if len(r.UnusedKeys) > 0 {
		fmt.Fprintf(w, "  %-32s %3d  %s\n", "unused keys:", len(r.UnusedKeys), warnColor("WARN"))
		for _, k := range r.UnusedKeys {
			fmt.Fprintf(w, "    %s\n", k)
		}
	} else {
		fmt.Fprintf(w, "  %-32s %3d  %s\n", "unused keys:", 0, okColor("OK"))
	}

	if r.Passed() {
		fmt.Fprintln(w, okColor("Audit passed."))
	} else {
		fmt.Fprintln(w, failColor("Audit failed."))
	}
}

func printPathSet(w io.Writer, label string, paths []string) {
	status := okColor("OK")
	if len(paths) > 0 {
		status = failColor("FAIL")
	}
	fmt.Fprintf(w, "  %-32s %3d  %s\n", label+":", len(paths), status)
	for _, p := range paths {
		fmt.Fprintf(w, "    %s\n", p)
	}
}

// outputStrings prints a path list in text or JSON format. Subcommands
// that report a single key set share it.
func outputStrings(w io.Writer, items []string, format, label string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(w, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
	return nil
}

func printIssues(w io.Writer, issues []Issue) {
	var errs, warns []Issue
	for _, issue := range issues {
		if issue.IsError() {
			errs = append(errs, issue)
		} else {
			warns = append(warns, issue)
		}
	}
	for _, issue := range errs {
		fmt.Fprintf(w, "  %s %s %s\n", failColor(string(issue.Kind)), issue.Path, issue.Detail)
	}
	for _, issue := range warns {
		fmt.Fprintf(w, "  %s %s %s\n", warnColor(string(issue.Kind)), issue.Path, issue.Detail)
	}
}
