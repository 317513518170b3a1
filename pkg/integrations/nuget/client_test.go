package nuget

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/depwalk/internal/nugettest"
	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/integrations"
)

func testClient(t *testing.T, indexURL string) *Client {
	t.Helper()
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(backend, indexURL, time.Hour,
		integrations.WithBackoff(cache.Backoff{Attempts: 3, Delay: time.Millisecond}))
}

func TestClient_FetchPackage(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"Serilog.Sinks.File": {
			Versions: []string{"4.1.0", "5.0.0", "10.0.0-dev-01", "5.0.1"},
			Groups: []nugettest.Group{
				{Framework: "net6.0", Deps: []string{"Serilog"}},
				{Framework: "netstandard2.0", Deps: []string{"Serilog", "System.IO"}},
			},
			Deps: []string{"Legacy.Dep"},
		},
	})
	c := testClient(t, feed.IndexURL())

	info, err := c.FetchPackage(context.Background(), "Serilog.Sinks.File", false)
	if err != nil {
		t.Fatalf("FetchPackage failed: %v", err)
	}

	if info.ID != "Serilog.Sinks.File" {
		t.Errorf("ID = %q", info.ID)
	}
	if info.Version != "5.0.1" {
		t.Errorf("Version = %q, want 5.0.1", info.Version)
	}
	want := []string{"Serilog", "System.IO", "Legacy.Dep"}
	if got := info.DependencyIDs(); !slices.Equal(got, want) {
		t.Errorf("DependencyIDs() = %v, want %v", got, want)
	}
	if len(info.Dependencies) != 4 {
		t.Errorf("Dependencies = %v, want 4 entries", info.Dependencies)
	}
	if d := info.Dependencies[0]; d.TargetFramework != "net6.0" || d.Version != "[1.0.0, )" {
		t.Errorf("Dependencies[0] = %+v", d)
	}
}

func TestClient_FetchPackage_CaseInsensitiveURL(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"Newtonsoft.Json": {},
	})
	c := testClient(t, feed.IndexURL())

	if _, err := c.FetchPackage(context.Background(), "NEWTONSOFT.JSON", false); err != nil {
		t.Fatalf("FetchPackage failed: %v", err)
	}
	if feed.Hits("newtonsoft.json") != 1 {
		t.Error("nuspec not requested with lower-cased id")
	}
}

func TestClient_FetchPackage_NotFound(t *testing.T) {
	feed := nugettest.New(t, nil)
	c := testClient(t, feed.IndexURL())

	_, err := c.FetchPackage(context.Background(), "Missing.Pkg", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchPackage_NoVersions(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"Empty": {Versions: []string{}},
	})
	c := testClient(t, feed.IndexURL())

	_, err := c.FetchPackage(context.Background(), "Empty", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchPackage_DotVersion(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"Odd": {Versions: []string{".."}},
	})
	c := testClient(t, feed.IndexURL())

	_, err := c.FetchPackage(context.Background(), "Odd", false)
	if !errors.Is(err, integrations.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
	if feed.Hits("Odd") != 0 {
		t.Errorf("nuspec requested %d times, want 0", feed.Hits("Odd"))
	}
}

func TestClient_FetchPackage_Cached(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"A": {Deps: []string{"B"}},
	})
	c := testClient(t, feed.IndexURL())
	ctx := context.Background()

	for range 3 {
		if _, err := c.FetchPackage(ctx, "A", false); err != nil {
			t.Fatal(err)
		}
	}
	if feed.Hits("A") != 1 {
		t.Errorf("nuspec fetched %d times, want 1", feed.Hits("A"))
	}

	if _, err := c.FetchPackage(ctx, "A", true); err != nil {
		t.Fatal(err)
	}
	if feed.Hits("A") != 2 {
		t.Errorf("refresh did not bypass cache: %d hits", feed.Hits("A"))
	}
}

func TestClient_FetchPackage_RetriesServerErrors(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"Flaky": {Deps: []string{"X"}},
	})
	feed.FailNext("Flaky", 2)
	c := testClient(t, feed.IndexURL())

	info, err := c.FetchPackage(context.Background(), "Flaky", false)
	if err != nil {
		t.Fatalf("FetchPackage failed after retries: %v", err)
	}
	if got := info.DependencyIDs(); !slices.Equal(got, []string{"X"}) {
		t.Errorf("DependencyIDs() = %v", got)
	}
}

func TestClient_FetchPackage_EmptyID(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1/v3/index.json")
	_, err := c.FetchPackage(context.Background(), "  ", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_BaseURL_MissingResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"3.0.0","resources":[{"@id":"x","@type":"SearchQueryService"}]}`))
	}))
	defer server.Close()
	c := testClient(t, server.URL)

	_, err := c.BaseURL(context.Background(), false)
	if !errors.Is(err, integrations.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestClient_BaseURL_ReadOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"resources":[{"@id":"https://feed.example/flat/","@type":"PackageBaseAddress/3.0.0"}]}`))
	}))
	defer server.Close()
	c := NewClient(nil, server.URL, time.Hour)

	for range 3 {
		base, err := c.BaseURL(context.Background(), true)
		if err != nil {
			t.Fatal(err)
		}
		if base != "https://feed.example/flat" {
			t.Errorf("BaseURL() = %q", base)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("service index read %d times, want 1", calls.Load())
	}
}

func TestNewClientDefaultIndex(t *testing.T) {
	c := NewClient(nil, "", time.Hour)
	if c.IndexURL() != DefaultIndexURL {
		t.Errorf("IndexURL() = %q", c.IndexURL())
	}
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
		ok       bool
	}{
		{"empty", nil, "", false},
		{"single", []string{"1.0.0"}, "1.0.0", true},
		{"numeric not lexicographic", []string{"9.0.1", "10.0.0", "2.5.0"}, "10.0.0", true},
		{"stable beats newer prerelease", []string{"1.0.0", "2.0.0-beta.1"}, "1.0.0", true},
		{"prerelease only", []string{"1.0.0-alpha", "1.0.0-beta"}, "1.0.0-beta", true},
		{"patch ordering", []string{"4.3.0", "4.3.1"}, "4.3.1", true},
		{"unparseable ignored", []string{"garbage", "1.2.3"}, "1.2.3", true},
		{"nothing parses", []string{"b", "a", "c"}, "c", true},
		{"four-part beats three-part", []string{"1.0.0", "1.0.0.1", "1.1.0.5"}, "1.1.0.5", true},
		{"revision numeric", []string{"1.0.66.0", "1.0.99.0", "1.0.118.0"}, "1.0.118.0", true},
		{"revision tiebreak", []string{"2.0.0", "2.0.0.3", "2.0.0.12"}, "2.0.0.12", true},
		{"four-part prerelease", []string{"1.0.0.1-beta", "1.0.0.2-alpha"}, "1.0.0.2-alpha", true},
		{"stable four-part beats prerelease", []string{"1.0.0.1", "1.0.0.2-rc"}, "1.0.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Latest(tt.versions)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Latest(%v) = %q, %v; want %q, %v", tt.versions, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNuspecNamespaces(t *testing.T) {
	docs := map[string]string{
		"2010": `<package xmlns="http://schemas.microsoft.com/packaging/2010/07/nuspec.xsd"><metadata><id>A</id><version>1.0.0</version><dependencies><dependency id="B" version="1.0"/></dependencies></metadata></package>`,
		"2013": `<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd"><metadata><id>A</id><version>1.0.0</version><dependencies><group><dependency id="B"/></group></dependencies></metadata></package>`,
		"none": `<package><metadata><id>A</id><version>1.0.0</version><dependencies><dependency id="B"/><dependency id=""/></dependencies></metadata></package>`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			var n nuspec
			if err := xml.Unmarshal([]byte(doc), &n); err != nil {
				t.Fatal(err)
			}
			info := n.packageInfo("a", "1.0.0")
			if info.ID != "A" {
				t.Errorf("ID = %q, want manifest id A", info.ID)
			}
			if got := info.DependencyIDs(); !slices.Equal(got, []string{"B"}) {
				t.Errorf("DependencyIDs() = %v, want [B]", got)
			}
		})
	}
}

func TestNuspecNoDependencies(t *testing.T) {
	var n nuspec
	if err := xml.Unmarshal([]byte(`<package><metadata><id>A</id></metadata></package>`), &n); err != nil {
		t.Fatal(err)
	}
	info := n.packageInfo("A", "1.0.0")
	if info.Dependencies == nil || len(info.DependencyIDs()) != 0 {
		t.Errorf("Dependencies = %#v, want empty non-nil", info.Dependencies)
	}
	if info.Version != "1.0.0" {
		t.Errorf("Version = %q, want fallback 1.0.0", info.Version)
	}
}
