package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func runUnused(args []string) error {
	fs := pflag.NewFlagSet("unused", pflag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportUnused(afero.NewOsFs(), LoadConfig(root), root, *format)
}

// reportUnused lists master keys with no literal reference and no dynamic
// pattern covering them. Keys reached only through constructed strings the
// scanner cannot see still show up here; that lower bound is inherent to
// the scan.
func reportUnused(fsys afero.Fs, cfg Config, root, format string) error {
	mp, err := masterPath(fsys, cfg, root)
	if err != nil {
		return err
	}
	master, err := LoadCatalog(fsys, mp)
	if err != nil {
		return err
	}
	flat := Flatten(master)

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

	unused := unusedKeys(flat, refs, dynamics)
	return outputStrings(os.Stdout, unused, format, "unused keys")
}

// unusedKeys returns the sorted master paths neither referenced directly
// nor matched by any dynamic key pattern.
func unusedKeys(flat FlatCatalog, refs map[string][]keyReference, dynamics []dynamicKeyRef) []string {
	var unused []string
	for _, k := range flat.SortedKeys() {
		if _, found := refs[k]; found {
			continue
		}
		covered := false
		for _, d := range dynamics {
			if d.Regex.MatchString(k) {
				covered = true
				break
			}
		}
		if !covered {
			unused = append(unused, k)
		}
	}
	return unused
}
