package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditReportPassed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AuditReport)
		want   bool
	}{
		{"empty report", func(r *AuditReport) {}, true},
		{
			"input error fails",
			func(r *AuditReport) { r.InputErrors["fr"] = "unexpected end of input" },
			false,
		},
		{
			"used key missing from master fails",
			func(r *AuditReport) { r.UsedMissing = []string{"home.title"} },
			false,
		},
		{
			"non-clean diff fails",
			func(r *AuditReport) {
				r.Locales["fr"] = &LocaleReport{Diff: DiffResult{Missing: []string{"a"}}}
			},
			false,
		},
		{
			"error-tier issue fails",
			func(r *AuditReport) {
				r.Locales["fr"] = &LocaleReport{Issues: []Issue{{Path: "a", Kind: EmptyValue}}}
			},
			false,
		},
		{
			"warning-tier issues pass",
			func(r *AuditReport) {
				r.Locales["fr"] = &LocaleReport{Issues: []Issue{
					{Path: "a", Kind: SuspiciousValue},
					{Path: "b", Kind: LengthMismatch},
				}}
			},
			true,
		},
		{
			"master error-tier issue fails",
			func(r *AuditReport) {
				r.MasterIssues = []Issue{{Path: "steps.es", Kind: MissingKey}}
			},
			false,
		},
		{
			"unused keys pass",
			func(r *AuditReport) { r.UnusedKeys = []string{"orphan"} },
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewAuditReport("en")
			tc.mutate(r)
			assert.Equal(t, tc.want, r.Passed())
		})
	}
}

func TestAuditReportSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewAuditReport("en")
	r.Locales["fr"] = &LocaleReport{
		Diff:   DiffResult{Missing: []string{"home.title"}},
		Issues: []Issue{{Path: "home.title", Kind: MissingKey}},
	}
	r.UnusedKeys = []string{"orphan"}

	require.NoError(t, r.Save(fsys, "/app/report.json"))

	data, err := afero.ReadFile(fsys, "/app/report.json")
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("\n")))

	var got AuditReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "en", got.Master)
	assert.Equal(t, []string{"home.title"}, got.Locales["fr"].Diff.Missing)
	assert.Equal(t, []string{"orphan"}, got.UnusedKeys)
}

func checkConfig() Config {
	return Config{
		Master:     "en",
		LocalesDir: "locales",
		SourceDir:  "src",
		Extensions: []string{".tsx"},
		Funcs:      []string{"t"},
		AllowList:  defaultAllowList,
		ReportPath: "report.json",
	}
}

func TestReportCheckPasses(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "/app/locales/en.json", `{
  "home": {"title": "Home", "subtitle": "Track your meals"}
}`)
	writeTestFile(t, fsys, "/app/locales/fr.json", `{
  "home": {"title": "Accueil", "subtitle": "Suivez vos repas"}
}`)
	writeTestFile(t, fsys, "/app/src/App.tsx", `
const a = t('home.title');
const b = t('home.subtitle');
`)

	var out bytes.Buffer
	require.NoError(t, reportCheck(fsys, checkConfig(), "/app", &out))
	assert.Contains(t, out.String(), "Audit passed.")

	data, err := afero.ReadFile(fsys, "/app/report.json")
	require.NoError(t, err)
	var report AuditReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.True(t, report.Passed())
	assert.Empty(t, report.Locales["fr"].Diff.Missing)
}

func TestReportCheckFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "/app/locales/en.json", `{
  "home": {"title": "Home", "subtitle": "Track your meals"}
}`)
	// fr is missing a key; es does not parse at all.
	writeTestFile(t, fsys, "/app/locales/fr.json", `{
  "home": {"title": "Accueil"}
}`)
	writeTestFile(t, fsys, "/app/locales/es.json", `{"home":`)
	writeTestFile(t, fsys, "/app/locales/README.md", "not a catalog")
	writeTestFile(t, fsys, "/app/src/App.tsx", `
const a = t('home.title');
const b = t('missing.key');
`)

	var out bytes.Buffer
	err := reportCheck(fsys, checkConfig(), "/app", &out)
	require.EqualError(t, err, "audit failed")

	// The broken es file is reported but does not abort the fr audit.
	data, readErr := afero.ReadFile(fsys, "/app/report.json")
	require.NoError(t, readErr)
	var report AuditReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Contains(t, report.InputErrors, "es")
	require.Contains(t, report.Locales, "fr")
	assert.Equal(t, []string{"home.subtitle"}, report.Locales["fr"].Diff.Missing)
	assert.Equal(t, []string{"missing.key"}, report.UsedMissing)
	assert.Equal(t, []string{"home.subtitle"}, report.UnusedKeys)

	text := out.String()
	assert.Contains(t, text, "INPUT ERROR")
	assert.Contains(t, text, "Audit failed.")
}

func TestReportVerifyIsolatesFailures(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "/app/locales/en.json", `{"a": "Hello"}`)
	writeTestFile(t, fsys, "/app/locales/de.json", `{broken`)
	writeTestFile(t, fsys, "/app/locales/fr.json", `{"a": ""}`)

	var out bytes.Buffer
	err := reportVerify(fsys, checkConfig(), "/app", "", "text", &out)
	require.EqualError(t, err, "1 locale file(s) could not be read")

	// de's parse failure is reported without blocking the fr audit.
	text := out.String()
	assert.Contains(t, text, "INPUT ERROR")
	assert.Contains(t, text, "fr: 1 issues")
	assert.Contains(t, text, "EMPTY")
}

func TestOutputStrings(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, outputStrings(&out, []string{"a.b", "c"}, "text", "stale keys"))
	assert.Equal(t, "Found 2 stale keys:\n  a.b\n  c\n", out.String())

	out.Reset()
	require.NoError(t, outputStrings(&out, nil, "text", "stale keys"))
	assert.Equal(t, "No stale keys found.\n", out.String())

	out.Reset()
	require.NoError(t, outputStrings(&out, []string{"a.b"}, "json", "stale keys"))
	assert.JSONEq(t, `["a.b"]`, out.String())
}

func TestAuditReportPrint(t *testing.T) {
	r := NewAuditReport("en")
	r.Locales["fr"] = &LocaleReport{
		Diff: DiffResult{Missing: []string{"home.title"}},
		Issues: []Issue{
			{Path: "a", Kind: SuspiciousValue, Detail: `value "a" repeats its key`},
			{Path: "home.title", Kind: MissingKey},
		},
	}
	r.InputErrors["es"] = "unexpected end of input"

	var out bytes.Buffer
	r.Print(&out)
	text := out.String()

	// Locales print in sorted order, broken ones included.
	esAt := strings.Index(text, "== es ==")
	frAt := strings.Index(text, "== fr ==")
	require.True(t, esAt >= 0 && frAt >= 0)
	assert.Less(t, esAt, frAt)

	// Errors print before warnings within a locale.
	assert.Less(t, strings.Index(text, "MISSING"), strings.Index(text, "SUSPICIOUS"))
	assert.Contains(t, text, "Audit failed.")
}
