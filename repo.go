package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

// repoRoot returns the application root by walking up from the current
// directory looking for package.json.
func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find repository root (no package.json found)")
		}
		dir = parent
	}
}

// Catalog file extensions the tool recognizes, in lookup order.
var catalogExts = []string{".json", ".yaml", ".yml"}

func isCatalogExt(ext string) bool {
	for _, e := range catalogExts {
		if e == ext {
			return true
		}
	}
	return false
}

// masterPath locates the master catalog file.
func masterPath(fsys afero.Fs, cfg Config, root string) (string, error) {
	dir := filepath.Join(root, cfg.LocalesDir)
	for _, ext := range catalogExts {
		path := filepath.Join(dir, cfg.Master+ext)
		if ok, _ := afero.Exists(fsys, path); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("master catalog %q not found in %s", cfg.Master, dir)
}

// findLocaleFiles lists target catalog files keyed by locale code. Files
// whose basename is not a known language tag (README, prompts) are
// skipped, as is the master.
func findLocaleFiles(fsys afero.Fs, cfg Config, root string) (map[string]string, error) {
	dir := filepath.Join(root, cfg.LocalesDir)
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	files := make(map[string]string)
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ext := filepath.Ext(info.Name())
		if !isCatalogExt(ext) {
			continue
		}
		code := strings.TrimSuffix(info.Name(), ext)
		if code == cfg.Master {
			continue
		}
		if _, err := language.Parse(code); err != nil {
			continue
		}
		files[code] = filepath.Join(dir, info.Name())
	}
	return files, nil
}

// loadPair loads the master catalog and one target locale's catalog.
func loadPair(fsys afero.Fs, cfg Config, root, locale string) (master, target *Node, err error) {
	mp, err := masterPath(fsys, cfg, root)
	if err != nil {
		return nil, nil, err
	}
	if master, err = LoadCatalog(fsys, mp); err != nil {
		return nil, nil, err
	}
	files, err := findLocaleFiles(fsys, cfg, root)
	if err != nil {
		return nil, nil, err
	}
	path, ok := files[locale]
	if !ok {
		return nil, nil, fmt.Errorf("no catalog file for locale %q in %s", locale, filepath.Join(root, cfg.LocalesDir))
	}
	if target, err = LoadCatalog(fsys, path); err != nil {
		return nil, nil, err
	}
	return master, target, nil
}

// sortedLocaleCodes returns the locale codes of a file map in order.
func sortedLocaleCodes(files map[string]string) []string {
	codes := make([]string, 0, len(files))
	for code := range files {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
