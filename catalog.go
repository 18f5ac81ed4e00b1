package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Kind discriminates catalog node variants.
type Kind uint8

const (
	Mapping Kind = iota
	Sequence
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Mapping:
		return "object"
	case Sequence:
		return "array"
	default:
		return "scalar"
	}
}

// ScalarType records the lexical type of a scalar leaf so catalogs
// round-trip without re-quoting numbers or booleans.
type ScalarType uint8

const (
	StringScalar ScalarType = iota
	NumberScalar
	BoolScalar
	NullScalar
)

// Node is one node of a locale catalog tree. Mapping children keep
// insertion order so rewritten catalogs diff cleanly in version control.
type Node struct {
	Kind Kind

	// Scalar only.
	Value string
	Type  ScalarType

	// Sequence only.
	Items []*Node

	keys     []string
	children map[string]*Node
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{Kind: Mapping, children: make(map[string]*Node)}
}

// NewString returns a string scalar node.
func NewString(s string) *Node {
	return &Node{Kind: Scalar, Value: s, Type: StringScalar}
}

// Keys returns mapping keys in insertion order.
func (n *Node) Keys() []string { return n.keys }

// Child returns the mapping child for key, or nil.
func (n *Node) Child(key string) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[key]
}

// Has reports whether the mapping has a child for key.
func (n *Node) Has(key string) bool {
	_, ok := n.children[key]
	return ok
}

// Set adds or replaces a mapping child, appending new keys at the end.
func (n *Node) Set(key string, child *Node) {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Delete removes a mapping child, keeping the order of the rest.
func (n *Node) Delete(key string) {
	if _, ok := n.children[key]; !ok {
		return
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	switch n.Kind {
	case Mapping:
		c := NewMapping()
		for _, k := range n.keys {
			c.Set(k, n.children[k].Clone())
		}
		return c
	case Sequence:
		c := &Node{Kind: Sequence, Items: make([]*Node, len(n.Items))}
		for i, item := range n.Items {
			c.Items[i] = item.Clone()
		}
		return c
	default:
		return &Node{Kind: Scalar, Value: n.Value, Type: n.Type}
	}
}

// equalNodes compares two nodes structurally, including mapping key order.
func equalNodes(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Scalar:
		return a.Type == b.Type && a.Value == b.Value
	case Sequence:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !equalNodes(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	default:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			if b.keys[i] != k {
				return false
			}
			if !equalNodes(a.children[k], b.children[k]) {
				return false
			}
		}
		return true
	}
}

// LoadCatalog reads and parses a locale catalog file. The format is
// chosen by extension: .yaml/.yml, otherwise JSON.
func LoadCatalog(fsys afero.Fs, path string) (*Node, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLCatalog(data, path)
	default:
		return parseJSONCatalog(data, path)
	}
}

// parseJSONCatalog decodes a JSON catalog via the token stream so mapping
// key order survives the round trip.
func parseJSONCatalog(data []byte, path string) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing %s: top level must be an object", path)
	}
	root, err := decodeJSONObject(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

func decodeJSONObject(dec *json.Decoder) (*Node, error) {
	node := NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		child, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Set(key, child)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return node, nil
}

func decodeJSONArray(dec *json.Decoder) (*Node, error) {
	node := &Node{Kind: Sequence}
	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return NewString(v), nil
	case json.Number:
		return &Node{Kind: Scalar, Value: v.String(), Type: NumberScalar}, nil
	case bool:
		return &Node{Kind: Scalar, Value: strconv.FormatBool(v), Type: BoolScalar}, nil
	case nil:
		return &Node{Kind: Scalar, Value: "null", Type: NullScalar}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseYAMLCatalog(data []byte, path string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewMapping(), nil
	}
	root, err := fromYAMLNode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if root.Kind != Mapping {
		return nil, fmt.Errorf("parsing %s: top level must be a mapping", path)
	}
	return root, nil
}

func fromYAMLNode(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.MappingNode:
		node := NewMapping()
		for i := 0; i+1 < len(y.Content); i += 2 {
			child, err := fromYAMLNode(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			node.Set(y.Content[i].Value, child)
		}
		return node, nil
	case yaml.SequenceNode:
		node := &Node{Kind: Sequence}
		for _, item := range y.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, child)
		}
		return node, nil
	case yaml.ScalarNode:
		st := StringScalar
		switch y.Tag {
		case "!!int", "!!float":
			st = NumberScalar
		case "!!bool":
			st = BoolScalar
		case "!!null":
			st = NullScalar
		}
		value := y.Value
		if st == NullScalar {
			value = "null"
		}
		return &Node{Kind: Scalar, Value: value, Type: st}, nil
	case yaml.AliasNode:
		return fromYAMLNode(y.Alias)
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", y.Kind)
}

// EncodeJSON renders the catalog as two-space-indented JSON with a
// trailing newline, preserving key order.
func (n *Node) EncodeJSON() []byte {
	var buf bytes.Buffer
	writeJSON(&buf, n, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeJSON(buf *bytes.Buffer, n *Node, depth int) {
	switch n.Kind {
	case Mapping:
		if len(n.keys) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, k := range n.keys {
			buf.WriteString(strings.Repeat("  ", depth+1))
			buf.Write(jsonQuote(k))
			buf.WriteString(": ")
			writeJSON(buf, n.children[k], depth+1)
			if i < len(n.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte('}')
	case Sequence:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range n.Items {
			buf.WriteString(strings.Repeat("  ", depth+1))
			writeJSON(buf, item, depth+1)
			if i < len(n.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte(']')
	case Scalar:
		if n.Type == StringScalar {
			buf.Write(jsonQuote(n.Value))
		} else {
			buf.WriteString(n.Value)
		}
	}
}

func jsonQuote(s string) []byte {
	b, err := json.Marshal(s)
	if err != nil {
		return []byte(`""`)
	}
	return b
}

// EncodeYAML renders the catalog as YAML with two-space indentation.
func (n *Node) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n.toYAMLNode()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) toYAMLNode() *yaml.Node {
	switch n.Kind {
	case Mapping:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range n.keys {
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				n.children[k].toYAMLNode())
		}
		return y
	case Sequence:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			y.Content = append(y.Content, item.toYAMLNode())
		}
		return y
	default:
		tag := "!!str"
		switch n.Type {
		case NumberScalar:
			tag = "!!int"
			if strings.ContainsAny(n.Value, ".eE") {
				tag = "!!float"
			}
		case BoolScalar:
			tag = "!!bool"
		case NullScalar:
			tag = "!!null"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.Value}
	}
}

// SaveCatalog writes a catalog back to path in the format implied by its
// extension. The write is atomic: a temp file in the same directory is
// renamed over the target, so a crash never leaves a half-written catalog.
func SaveCatalog(fsys afero.Fs, path string, root *Node) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		encoded, err := root.EncodeYAML()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		data = encoded
	default:
		data = root.EncodeJSON()
	}
	return writeFileAtomic(fsys, path, data)
}

func writeFileAtomic(fsys afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return err
	}
	return nil
}
