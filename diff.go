package main

import "sort"

// DiffResult holds the three reconciliation sets for a (master, target)
// locale pair. Path lists are sorted for stable output.
type DiffResult struct {
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
	Empty   []string `json:"empty"`
}

// Diff reconciles a target catalog against the master key set. Missing and
// extra are the two halves of the symmetric difference; empty lists keys
// present in both whose target leaf is an empty string.
func Diff(master, target FlatCatalog) DiffResult {
	var d DiffResult
	for _, k := range master.Keys {
		if !target.Has(k) {
			d.Missing = append(d.Missing, k)
		}
	}
	for _, k := range target.Keys {
		if !master.Has(k) {
			d.Extra = append(d.Extra, k)
			continue
		}
		leaf := target.Values[k]
		if leaf.Kind == Scalar && leaf.Type == StringScalar && leaf.Value == "" {
			d.Empty = append(d.Empty, k)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	sort.Strings(d.Empty)
	return d
}

// Clean reports whether the diff found nothing.
func (d DiffResult) Clean() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.Empty) == 0
}
