// Package nugettest serves fake NuGet v3 feeds for tests.
package nugettest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Package is one package published on a fake feed. Every version serves the
// same nuspec: the dependency groups in order, then the ungrouped Deps.
// Versions defaults to ["1.0.0"].
type Package struct {
	Versions []string
	Groups   []Group
	Deps     []string
}

// Group is a framework-specific dependency group.
type Group struct {
	Framework string
	Deps      []string
}

// Feed is a running fake feed.
type Feed struct {
	*httptest.Server

	mu       sync.Mutex
	packages map[string]Package
	names    map[string]string
	hits     map[string]int
	fail     map[string]int
	requests []string
}

// New starts a feed serving packages, keyed by id in any case. The server
// is closed when the test ends.
func New(t testing.TB, packages map[string]Package) *Feed {
	t.Helper()
	f := &Feed{
		packages: make(map[string]Package, len(packages)),
		names:    make(map[string]string, len(packages)),
		hits:     make(map[string]int),
		fail:     make(map[string]int),
	}
	for id, p := range packages {
		f.packages[strings.ToLower(id)] = p
		f.names[strings.ToLower(id)] = id
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/v3/index.json", f.serviceIndex)
	r.Get("/v3-flatcontainer/{id}/index.json", f.versions)
	r.Get("/v3-flatcontainer/{id}/{version}/{file}", f.nuspec)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

// IndexURL returns the service index URL of the feed.
func (f *Feed) IndexURL() string { return f.URL + "/v3/index.json" }

// Hits returns how often the nuspec of id was served.
func (f *Feed) Hits(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[strings.ToLower(id)]
}

// Requests returns the paths requested so far, in order.
func (f *Feed) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

func (f *Feed) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.URL.Path)
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next n requests for id answer 500.
func (f *Feed) FailNext(id string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[strings.ToLower(id)] = n
}

func (f *Feed) serviceIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"version": "3.0.0",
		"resources": []map[string]string{
			{"@id": f.URL + "/v3/registration5/", "@type": "RegistrationsBaseUrl/3.6.0"},
			{"@id": f.URL + "/v3-flatcontainer/", "@type": "PackageBaseAddress/3.0.0"},
		},
	})
}

func (f *Feed) lookup(w http.ResponseWriter, id string) (Package, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[id] > 0 {
		f.fail[id]--
		w.WriteHeader(http.StatusInternalServerError)
		return Package{}, false
	}
	p, ok := f.packages[id]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
	}
	return p, ok
}

func (f *Feed) versions(w http.ResponseWriter, r *http.Request) {
	p, ok := f.lookup(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	versions := p.Versions
	if versions == nil {
		versions = []string{"1.0.0"}
	}
	writeJSON(w, map[string][]string{"versions": versions})
}

func (f *Feed) nuspec(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if chi.URLParam(r, "file") != id+".nuspec" {
		http.NotFound(w, r)
		return
	}
	p, ok := f.lookup(w, id)
	if !ok {
		return
	}
	f.mu.Lock()
	f.hits[id]++
	f.mu.Unlock()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd"><metadata>`)
	fmt.Fprintf(&b, "<id>%s</id><version>%s</version><dependencies>", f.names[id], chi.URLParam(r, "version"))
	for _, g := range p.Groups {
		fmt.Fprintf(&b, `<group targetFramework="%s">`, g.Framework)
		for _, d := range g.Deps {
			fmt.Fprintf(&b, `<dependency id="%s" version="[1.0.0, )" />`, d)
		}
		b.WriteString("</group>")
	}
	for _, d := range p.Deps {
		fmt.Fprintf(&b, `<dependency id="%s" />`, d)
	}
	b.WriteString("</dependencies></metadata></package>")

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(b.String()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
