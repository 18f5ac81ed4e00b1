package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"no markers", nil},
		{"Hello {{name}}", []string{"name"}},
		{"{{b}} then {{a}}", []string{"a", "b"}},
		{"{{ spaced }}", []string{"spaced"}},
		{"{{dup}} and {{dup}}", []string{"dup", "dup"}},
		{"single {brace}", nil},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Placeholders(tc.input))
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		master string
		target string
		want   []Issue
	}{
		{
			name:   "identical catalogs are clean",
			master: `{"a": {"title": "Welcome {{user}}"}}`,
			target: `{"a": {"title": "Welcome {{user}}"}}`,
			want:   nil,
		},
		{
			name:   "placeholder dropped in translation",
			master: `{"a": {"title": "Welcome {{user}}"}}`,
			target: `{"a": {"title": "Bienvenue"}}`,
			want: []Issue{{
				Path:   "a.title",
				Kind:   PlaceholderMismatch,
				Detail: "master has [user], target has []",
			}},
		},
		{
			name:   "placeholder order does not matter",
			master: `{"m": "{{a}} vs {{b}}"}`,
			target: `{"m": "{{b}} contre {{a}}"}`,
			want:   nil,
		},
		{
			name:   "missing key stops descent",
			master: `{"a": {"b": "1", "c": "2"}}`,
			target: `{"a": {"b": "1"}}`,
			want:   []Issue{{Path: "a.c", Kind: MissingKey}},
		},
		{
			name:   "type mismatch stops descent",
			master: `{"a": {"b": "1"}}`,
			target: `{"a": "not an object"}`,
			want: []Issue{{
				Path:   "a",
				Kind:   TypeMismatch,
				Detail: "master is object, target is scalar",
			}},
		},
		{
			name:   "empty value",
			master: `{"a": "x"}`,
			target: `{"a": ""}`,
			want:   []Issue{{Path: "a", Kind: EmptyValue}},
		},
		{
			name:   "value repeating its key segment is suspicious",
			master: `{"settings": {"theme": "Theme settings"}}`,
			target: `{"settings": {"theme": "theme"}}`,
			want: []Issue{{
				Path:   "settings.theme",
				Kind:   SuspiciousValue,
				Detail: `value "theme" repeats its key`,
			}},
		},
		{
			name:   "allow-listed token is not suspicious",
			master: `{"units": {"kcal": "kcal"}}`,
			target: `{"units": {"kcal": "kcal"}}`,
			want:   nil,
		},
		{
			name:   "array length mismatch is a warning",
			master: `{"steps": ["one", "two", "three"]}`,
			target: `{"steps": ["uno", "dos"]}`,
			want: []Issue{{
				Path:   "steps",
				Kind:   LengthMismatch,
				Detail: "master has 3 items, target has 2",
			}},
		},
		{
			name:   "array elements still checked",
			master: `{"steps": ["one {{n}}", "two"]}`,
			target: `{"steps": ["uno", ""]}`,
			want: []Issue{
				{Path: "steps[0]", Kind: PlaceholderMismatch, Detail: "master has [n], target has []"},
				{Path: "steps[1]", Kind: EmptyValue},
			},
		},
	}

	v := NewVerifier(defaultAllowList)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := v.Verify(mustParse(t, tc.master), mustParse(t, tc.target))
			assert.Equal(t, tc.want, got)
		})
	}
}

// Verifying a string against itself never yields a placeholder mismatch.
func TestPlaceholderParitySelfLaw(t *testing.T) {
	values := []string{
		"plain", "Hello {{name}}", "{{a}}{{b}}", "{{x}} and {{x}}", "",
	}
	v := NewVerifier(nil)
	for _, s := range values {
		master := NewMapping()
		master.Set("k", NewString(s))
		for _, issue := range v.Verify(master, master.Clone()) {
			assert.NotEqual(t, PlaceholderMismatch, issue.Kind, "value %q", s)
		}
	}
}

func TestIssueSeverity(t *testing.T) {
	assert.True(t, Issue{Kind: TypeMismatch}.IsError())
	assert.True(t, Issue{Kind: MissingKey}.IsError())
	assert.True(t, Issue{Kind: EmptyValue}.IsError())
	assert.True(t, Issue{Kind: PlaceholderMismatch}.IsError())
	assert.False(t, Issue{Kind: SuspiciousValue}.IsError())
	assert.False(t, Issue{Kind: LengthMismatch}.IsError())
}

func TestVerifyLocalizedArrays(t *testing.T) {
	master := mustParse(t, `{
  "program": {
    "howItWorks": {
      "en": ["step 1", "step 2", "step 3"],
      "fr": ["étape 1", "étape 2"],
      "de": ["Schritt 1", "Schritt 2", "Schritt 3"]
    }
  },
  "plain": {"title": "Not localized arrays"}
}`)

	v := NewVerifier(nil)
	issues := v.VerifyLocalizedArrays(master, "en", []string{"de", "es", "fr"})
	require.Len(t, issues, 2)

	assert.Equal(t, Issue{
		Path:   "program.howItWorks.es",
		Kind:   MissingKey,
		Detail: "no entry for locale es",
	}, issues[0])
	assert.Equal(t, Issue{
		Path:   "program.howItWorks.fr",
		Kind:   LengthMismatch,
		Detail: "2 items, en has 3",
	}, issues[1])
}

func TestIsLocalizedArray(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"locale keyed arrays", `{"en": ["a"], "fr": ["b"]}`, true},
		{"non-locale key", `{"en": ["a"], "title": ["b"]}`, false},
		{"non-array value", `{"en": "not an array"}`, false},
		{"empty mapping", `{}`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isLocalizedArray(mustParse(t, tc.json)))
		})
	}
}
