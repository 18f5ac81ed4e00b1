package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func runReferences(args []string) error {
	fs := pflag.NewFlagSet("references", pflag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportReferences(afero.NewOsFs(), LoadConfig(root), root, *format)
}

func reportReferences(fsys afero.Fs, cfg Config, root, format string) error {
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
	refs, err := scanner.ScanUsage(fsys, filepath.Join(root, cfg.SourceDir))
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	}

	for _, k := range flat.SortedKeys() {
		locations := refs[k]
		if len(locations) == 0 {
			continue
		}
		fmt.Printf("%s:\n", k)
		for _, loc := range locations {
			fmt.Printf("  %s:%d\n", loc.File, loc.Line)
		}
	}
	return nil
}
