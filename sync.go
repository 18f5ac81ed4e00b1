package main

import (
	"github.com/spf13/afero"
)

// SyncCatalog returns a copy of target reshaped to master's key set:
// master-only subtrees are filled in with master's values as placeholders,
// target-only subtrees are dropped, and leaf values present in both are
// kept from target verbatim. Key order follows master. Running the result
// through SyncCatalog again with the same master is a no-op.
func SyncCatalog(master, target *Node) *Node {
	return pruneOrphans(master, fillMissing(master, target))
}

// fillMissing walks master and target in parallel, adding master subtrees
// the target lacks. Existing target nodes are never replaced; filled-in
// leaves carry the master's value as an explicit fallback, which the
// quality verifier still flags for review.
func fillMissing(master, target *Node) *Node {
	result := NewMapping()
	for _, k := range target.Keys() {
		result.Set(k, target.Child(k).Clone())
	}
	for _, k := range master.Keys() {
		mc := master.Child(k)
		tc := result.Child(k)
		switch {
		case tc == nil && mc.Kind == Mapping:
			result.Set(k, fillMissing(mc, NewMapping()))
		case tc == nil:
			result.Set(k, mc.Clone())
		case mc.Kind == Mapping && tc.Kind == Mapping:
			result.Set(k, fillMissing(mc, tc))
		}
	}
	return result
}

// pruneOrphans rebuilds target keeping only keys present in master, in
// master's key order. Where master and target disagree on node kind, the
// target value is unrepresentable in master's shape and master's subtree
// wins, unless both sides are leaves.
func pruneOrphans(master, target *Node) *Node {
	result := NewMapping()
	for _, k := range master.Keys() {
		mc := master.Child(k)
		tc := target.Child(k)
		switch {
		case tc == nil:
			result.Set(k, mc.Clone())
		case mc.Kind == Mapping && tc.Kind == Mapping:
			result.Set(k, pruneOrphans(mc, tc))
		case mc.Kind != Mapping && tc.Kind != Mapping:
			result.Set(k, tc.Clone())
		default:
			result.Set(k, mc.Clone())
		}
	}
	return result
}

// SyncResult summarizes one locale file's sync.
type SyncResult struct {
	Locale  string `json:"locale"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Changed bool   `json:"changed"`
}

// SyncFile reshapes one target locale file against the master catalog and
// rewrites it in place when anything changed (including key reordering).
func SyncFile(fsys afero.Fs, master *Node, path, locale string) (SyncResult, error) {
	res := SyncResult{Locale: locale}
	target, err := LoadCatalog(fsys, path)
	if err != nil {
		return res, err
	}
	synced := SyncCatalog(master, target)

	before := Flatten(target)
	after := Flatten(synced)
	for _, k := range after.Keys {
		if !before.Has(k) {
			res.Added++
		}
	}
	for _, k := range before.Keys {
		if !after.Has(k) {
			res.Removed++
		}
	}
	res.Changed = !equalNodes(target, synced)
	if !res.Changed {
		return res, nil
	}
	if err := SaveCatalog(fsys, path, synced); err != nil {
		return res, err
	}
	return res, nil
}
