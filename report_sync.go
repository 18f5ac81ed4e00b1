package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func runSync(args []string) error {
	fs := pflag.NewFlagSet("sync", pflag.ExitOnError)
	locale := fs.StringP("locale", "l", "", "Target locale code (default: all locales)")
	fs.Parse(args)

	root, err := repoRoot()
	if err != nil {
		return err
	}
	return reportSync(afero.NewOsFs(), LoadConfig(root), root, *locale)
}

// reportSync reshapes target locale files to the master's key set. Each
// file is independent, so locales are synced concurrently and a parse
// failure in one never blocks the others.
func reportSync(fsys afero.Fs, cfg Config, root, locale string) error {
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

	var mu sync.Mutex
	results := make(map[string]SyncResult, len(files))
	failures := make(map[string]error)

	g := new(errgroup.Group)
	for code, path := range files {
		code, path := code, path
		g.Go(func() error {
			res, err := SyncFile(fsys, master, path, code)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[code] = err
			} else {
				results[code] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, code := range sortedLocaleCodes(files) {
		if err, ok := failures[code]; ok {
			fmt.Fprintf(os.Stderr, "%s: %v\n", code, err)
			continue
		}
		res := results[code]
		if !res.Changed {
			fmt.Fprintf(os.Stderr, "%s: up to date\n", code)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: added %d keys, removed %d keys\n", code, res.Added, res.Removed)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d locale file(s) could not be synced", len(failures))
	}
	return nil
}
