package main

import "sort"

// FlatCatalog maps dot-joined paths to their leaf nodes, preserving the
// catalog's depth-first key order in Keys.
type FlatCatalog struct {
	Keys   []string
	Values map[string]*Node
}

// Flatten converts a catalog tree into dot-path keyed leaves. Sequences
// and scalars are leaves; only mappings are descended into.
func Flatten(root *Node) FlatCatalog {
	flat := FlatCatalog{Values: make(map[string]*Node)}
	flattenInto("", root, &flat)
	return flat
}

func flattenInto(prefix string, node *Node, flat *FlatCatalog) {
	for _, k := range node.Keys() {
		path := joinPath(prefix, k)
		child := node.Child(k)
		if child.Kind == Mapping {
			flattenInto(path, child, flat)
			continue
		}
		flat.Keys = append(flat.Keys, path)
		flat.Values[path] = child
	}
}

// Has reports whether a path exists in the flattened catalog.
func (f FlatCatalog) Has(path string) bool {
	_, ok := f.Values[path]
	return ok
}

// SortedKeys returns the paths in lexical order.
func (f FlatCatalog) SortedKeys() []string {
	keys := make([]string, len(f.Keys))
	copy(keys, f.Keys)
	sort.Strings(keys)
	return keys
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
