package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := parseJSONCatalog([]byte(src), "test.json")
	require.NoError(t, err)
	return root
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		master      string
		target      string
		wantMissing []string
		wantExtra   []string
		wantEmpty   []string
	}{
		{
			name:        "empty target misses everything",
			master:      `{"a": {"b": "Hello {{name}}"}}`,
			target:      `{}`,
			wantMissing: []string{"a.b"},
		},
		{
			name:      "orphan key is extra",
			master:    `{"a": "x"}`,
			target:    `{"a": "x", "b": "y"}`,
			wantExtra: []string{"b"},
		},
		{
			name:      "empty string flagged",
			master:    `{"a": "x", "b": "y"}`,
			target:    `{"a": "", "b": "y"}`,
			wantEmpty: []string{"a"},
		},
		{
			name:        "mixed",
			master:      `{"a": "1", "b": {"c": "2", "d": "3"}}`,
			target:      `{"a": "", "b": {"c": "2"}, "z": "orphan"}`,
			wantMissing: []string{"b.d"},
			wantExtra:   []string{"z"},
			wantEmpty:   []string{"a"},
		},
		{
			name:   "identical catalogs are clean",
			master: `{"a": {"b": "x"}}`,
			target: `{"a": {"b": "y"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Diff(Flatten(mustParse(t, tc.master)), Flatten(mustParse(t, tc.target)))
			assert.Equal(t, tc.wantMissing, d.Missing)
			assert.Equal(t, tc.wantExtra, d.Extra)
			assert.Equal(t, tc.wantEmpty, d.Empty)
		})
	}
}

// The three diff sets are pairwise disjoint, and missing+extra+common
// covers the union of both key sets.
func TestDiffCompleteness(t *testing.T) {
	master := Flatten(mustParse(t, `{"a": "1", "b": {"c": "2", "d": ""}, "e": "3"}`))
	target := Flatten(mustParse(t, `{"a": "", "b": {"c": "2", "x": "9"}, "f": "7"}`))
	d := Diff(master, target)

	inSet := func(set []string, k string) bool {
		for _, s := range set {
			if s == k {
				return true
			}
		}
		return false
	}

	for _, k := range d.Missing {
		assert.False(t, inSet(d.Extra, k), "%q in missing and extra", k)
		assert.False(t, inSet(d.Empty, k), "%q in missing and empty", k)
	}
	for _, k := range d.Extra {
		assert.False(t, inSet(d.Empty, k), "%q in extra and empty", k)
	}

	union := make(map[string]bool)
	for _, k := range master.Keys {
		union[k] = true
	}
	for _, k := range target.Keys {
		union[k] = true
	}
	covered := make(map[string]bool)
	for _, k := range d.Missing {
		covered[k] = true
	}
	for _, k := range d.Extra {
		covered[k] = true
	}
	for _, k := range master.Keys { // common keys
		if target.Has(k) {
			covered[k] = true
		}
	}
	assert.Equal(t, union, covered)
}
