package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func runCheck(args []string) error {
	fs := pflag.NewFlagSet("check", pflag.ExitOnError)
	reportPath := fs.String("report", "", "Report artifact path (default from config)")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	cfg := LoadConfig(root)
	if *reportPath != "" {
		cfg.ReportPath = *reportPath
	}
	return reportCheck(afero.NewOsFs(), cfg, root, os.Stdout)
}

// reportCheck runs the full audit: per-locale diffs and quality issues,
// localized-array parity on the master, and the code-usage audit. It
// writes the report artifact and fails when any error-severity finding
// exists; warnings alone never fail the run.
func reportCheck(fsys afero.Fs, cfg Config, root string, out io.Writer) error {
	report := NewAuditReport(cfg.Master)

	mp, err := masterPath(fsys, cfg, root)
	if err != nil {
		return err
	}
	master, err := LoadCatalog(fsys, mp)
	if err != nil {
		return err
	}
	masterFlat := Flatten(master)

	files, err := findLocaleFiles(fsys, cfg, root)
	if err != nil {
		return err
	}

	// Locale files are read-only inputs with independent results, so they
	// are audited concurrently. A parse failure in one locale is recorded
	// and never aborts the others.
	verifier := NewVerifier(cfg.AllowList)
	var mu sync.Mutex
	g := new(errgroup.Group)
	for code, path := range files {
		code, path := code, path
		g.Go(func() error {
			target, err := LoadCatalog(fsys, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.InputErrors[code] = err.Error()
				return nil
			}
			report.Locales[code] = &LocaleReport{
				Diff:   Diff(masterFlat, Flatten(target)),
				Issues: verifier.Verify(master, target),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report.MasterIssues = verifier.VerifyLocalizedArrays(master, cfg.Master, sortedLocaleCodes(files))

	scanner := NewScanner(cfg.Funcs, cfg.Extensions)
	srcDir := filepath.Join(root, cfg.SourceDir)
	refs, err := scanner.ScanUsage(fsys, srcDir)
	if err != nil {
		return err
	}
	dynamics, err := scanner.FindDynamicPatterns(fsys, srcDir)
	if err != nil {
		return err
	}
	for _, key := range sortedUsageKeys(refs) {
		if !masterFlat.Has(key) {
			report.UsedMissing = append(report.UsedMissing, key)
		}
	}
	report.UnusedKeys = unusedKeys(masterFlat, refs, dynamics)

	report.Print(out)
	if err := report.Save(fsys, filepath.Join(root, cfg.ReportPath)); err != nil {
		return err
	}

	if !report.Passed() {
		return fmt.Errorf("audit failed")
	}
	return nil
}

func sortedUsageKeys(refs map[string][]keyReference) []string {
	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
