package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// configFile is an optional env-style file at the repo root holding
// defaults for a project, so CI and developers run the same audit.
const configFile = ".i18n-audit"

// Config carries the audit's process-scoped settings. Values come from
// flags, which override environment variables, which override the
// .i18n-audit file. Components receive the config explicitly; there are
// no package-level settings.
type Config struct {
	Master     string   // master locale code
	LocalesDir string   // catalog directory, relative to the repo root
	SourceDir  string   // source tree to scan, relative to the repo root
	Extensions []string // source file extensions to scan
	Funcs      []string // translation lookup function names
	AllowList  []string // values exempt from the suspicious heuristic
	ReportPath string   // report artifact path, relative to the repo root
}

// defaultAllowList covers short technical tokens that legitimately appear
// as both key fragment and value: unit abbreviations and a handful of
// words that read the same in most locales.
var defaultAllowList = []string{
	"g", "kg", "mg", "ml", "l", "kcal", "cal", "cm", "mm",
	"min", "max", "ok", "id", "app", "bmi", "email", "url", "faq",
}

// LoadConfig builds the configuration for a run rooted at root.
func LoadConfig(root string) Config {
	// Missing file is fine; godotenv never overrides real env vars.
	_ = godotenv.Load(filepath.Join(root, configFile))

	cfg := Config{
		Master:     envOrDefault("I18N_MASTER", "en"),
		LocalesDir: envOrDefault("I18N_LOCALES_DIR", "locales"),
		SourceDir:  envOrDefault("I18N_SOURCE_DIR", "src"),
		Extensions: splitList(envOrDefault("I18N_EXTENSIONS", ".ts,.tsx,.js,.jsx")),
		Funcs:      splitList(envOrDefault("I18N_FUNCS", "t,translate")),
		ReportPath: envOrDefault("I18N_REPORT", "i18n-audit-report.json"),
		AllowList:  defaultAllowList,
	}
	if extra := os.Getenv("I18N_ALLOWLIST"); extra != "" {
		cfg.AllowList = append(append([]string{}, defaultAllowList...), splitList(extra)...)
	}
	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
