package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func runStale(args []string) error {
	fs := pflag.NewFlagSet("stale", pflag.ExitOnError)
	locale := fs.StringP("locale", "l", "", "Target locale code (required)")
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(args)

	if *locale == "" {
		return fmt.Errorf("--locale is required")
	}

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportStale(afero.NewOsFs(), LoadConfig(root), root, *locale, *format)
}

func reportStale(fsys afero.Fs, cfg Config, root, locale, format string) error {
	master, target, err := loadPair(fsys, cfg, root, locale)
	if err != nil {
		return err
	}
	d := Diff(Flatten(master), Flatten(target))
	return outputStrings(os.Stdout, d.Extra, format, "stale keys in "+locale)
}
