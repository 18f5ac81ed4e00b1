package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func runVerify(args []string) error {
	fs := pflag.NewFlagSet("verify", pflag.ExitOnError)
	locale := fs.StringP("locale", "l", "", "Target locale code (default: all locales)")
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportVerify(afero.NewOsFs(), LoadConfig(root), root, *locale, *format, os.Stdout)
}

// reportVerify runs the quality verifier for one or all target locales.
// A locale file that fails to load is reported as an input error and the
// remaining locales are still audited.
func reportVerify(fsys afero.Fs, cfg Config, root, locale, format string, out io.Writer) error {
	mp, err := masterPath(fsys, cfg, root)
	if err != nil {
		return err
	}
	master, err := LoadCatalog(fsys, mp)
	if err != nil {
		return err
	}
	files, err := findLocaleFiles(fsys, cfg, root)
	if err != nil {
		return err
	}
	if locale != "" {
		path, ok := files[locale]
		if !ok {
			return fmt.Errorf("no catalog file for locale %q", locale)
		}
		files = map[string]string{locale: path}
	}

	verifier := NewVerifier(cfg.AllowList)
	byLocale := make(map[string][]Issue, len(files))
	inputErrors := make(map[string]string)
	errCount := 0
	for _, code := range sortedLocaleCodes(files) {
		target, err := LoadCatalog(fsys, files[code])
		if err != nil {
			inputErrors[code] = err.Error()
			continue
		}
		issues := verifier.Verify(master, target)
		byLocale[code] = issues
		for _, issue := range issues {
			if issue.IsError() {
				errCount++
			}
		}
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		payload := struct {
			Issues      map[string][]Issue `json:"issues"`
			InputErrors map[string]string  `json:"inputErrors,omitempty"`
		}{byLocale, inputErrors}
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		for _, code := range sortedLocaleCodes(files) {
			if msg, ok := inputErrors[code]; ok {
				fmt.Fprintf(out, "%s: %s %s\n", code, failColor("INPUT ERROR"), msg)
				continue
			}
			issues := byLocale[code]
			if len(issues) == 0 {
				fmt.Fprintf(out, "%s: no issues\n", code)
				continue
			}
			fmt.Fprintf(out, "%s: %d issues\n", code, len(issues))
			printIssues(out, issues)
		}
	}

	if len(inputErrors) > 0 {
		return fmt.Errorf("%d locale file(s) could not be read", len(inputErrors))
	}
	if errCount > 0 {
		return fmt.Errorf("%d error-severity issues found", errCount)
	}
	return nil
}
