package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/depwalk/pkg/buildinfo"
	"github.com/matzehuels/depwalk/pkg/depgraph"
	"github.com/matzehuels/depwalk/pkg/deps"
)

// Report is the JSON document describing one graph walk.
type Report struct {
	RunID        string            `json:"run_id"`
	Tool         buildinfo.Info    `json:"tool"`
	Root         string            `json:"root"`
	Options      Options           `json:"options"`
	Graph        []Entry           `json:"graph"`
	InstallOrder []string          `json:"install_order"`
	Excluded     []string          `json:"excluded"`
	Unresolved   []UnresolvedEntry `json:"unresolved"`
	Cycles       [][]string        `json:"cycles"`
	Stats        Stats             `json:"stats"`
}

// Options echoes the settings the walk ran with.
type Options struct {
	Mode     string `json:"mode"`
	Repo     string `json:"repo"`
	MaxDepth int    `json:"max_depth"`
	Filter   string `json:"filter,omitempty"`
}

// Entry is one expanded package.
type Entry struct {
	Name         string   `json:"name"`
	Depth        int      `json:"depth"`
	Dependencies []string `json:"dependencies"`
}

// UnresolvedEntry is a package whose dependencies could not be fetched.
type UnresolvedEntry struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
	Error string `json:"error"`
}

// Stats summarizes the walk.
type Stats struct {
	Packages   int   `json:"packages"`
	Edges      int   `json:"edges"`
	Fetches    int   `json:"fetches"`
	DurationMS int64 `json:"duration_ms"`
}

// NewReport builds a report from a walk result, computing the install order
// and the cycle groups. Every slice in the report is non-nil so the encoded
// document never contains null arrays.
func NewReport(res *deps.Result, opts Options) (*Report, error) {
	cycles, err := depgraph.Cycles(res.Graph)
	if err != nil {
		return nil, fmt.Errorf("cycles: %w", err)
	}
	if cycles == nil {
		cycles = [][]string{}
	}
	order := depgraph.Sort(res.Graph)

	r := &Report{
		RunID:        uuid.NewString(),
		Tool:         buildinfo.Get(),
		Root:         res.Root,
		Options:      opts,
		Graph:        make([]Entry, 0, res.Graph.Len()),
		InstallOrder: order.Packages,
		Excluded:     nonNil(order.Excluded),
		Unresolved:   make([]UnresolvedEntry, 0, len(res.Unresolved)),
		Cycles:       cycles,
		Stats: Stats{
			Packages:   res.Graph.Len(),
			Edges:      res.Graph.EdgeCount(),
			Fetches:    res.Fetches,
			DurationMS: res.Duration.Milliseconds(),
		},
	}
	for name, ds := range res.Graph.All() {
		r.Graph = append(r.Graph, Entry{Name: name, Depth: res.Depths[name], Dependencies: nonNil(ds)})
	}
	for _, u := range res.Unresolved {
		r.Unresolved = append(r.Unresolved, UnresolvedEntry{Name: u.Name, Depth: u.Depth, Error: u.Err.Error()})
	}
	return r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// WriteJSON encodes r as indented JSON and writes it to w.
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes r to a JSON file at path.
func ExportJSON(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
