package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depwalk/pkg/depgraph"
)

// ReadJSON decodes a graph from r.
//
// The input is either a report written by [WriteJSON], recognized by its
// "graph" array, or an object mapping each package name to its direct
// dependencies. Report entries and mapping keys keep their order in the
// file.
//
// ReadJSON returns an error if the JSON is malformed, if a report entry has
// an empty name, or if a name appears twice. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*depgraph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if raw, ok := probe["graph"]; ok && isArray(raw) {
		return readReport(data)
	}
	return readMapping(data)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func readReport(data []byte) (*depgraph.Graph, error) {
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	g := depgraph.New()
	for i, e := range rep.Graph {
		if e.Name == "" {
			return nil, fmt.Errorf("graph entry %d: empty name", i)
		}
		if g.Has(e.Name) {
			return nil, fmt.Errorf("graph entry %d: duplicate package %s", i, e.Name)
		}
		g.Set(e.Name, e.Dependencies)
	}
	return g, nil
}

func readMapping(data []byte) (*depgraph.Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("decode mapping: expected object")
	}

	g := depgraph.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode mapping: %w", err)
		}
		name := tok.(string)
		var deps []string
		if err := dec.Decode(&deps); err != nil {
			return nil, fmt.Errorf("decode mapping: package %s: %w", name, err)
		}
		if g.Has(name) {
			return nil, fmt.Errorf("decode mapping: duplicate package %s", name)
		}
		g.Set(name, deps)
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*depgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
