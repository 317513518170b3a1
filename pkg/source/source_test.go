package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/depwalk/internal/nugettest"
	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/depgraph"
	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	"github.com/matzehuels/depwalk/pkg/integrations"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"online", ModeOnline, true},
		{"OFFLINE", ModeOffline, true},
		{" Test ", ModeTest, true},
		{"", "", false},
		{"remote", "", false},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidMode) {
			t.Errorf("ParseMode(%q) error code = %s", tt.in, errs.GetCode(err))
		}
	}
}

func TestConfigValidate(t *testing.T) {
	file := writeFile(t, "repo.json", `{}`)

	tests := []struct {
		name string
		cfg  Config
		code errs.Code
	}{
		{"online url", Config{Mode: ModeOnline, Repo: "https://api.nuget.org/v3/index.json"}, ""},
		{"online path", Config{Mode: ModeOnline, Repo: file}, errs.ErrCodeInvalidInput},
		{"online ftp", Config{Mode: ModeOnline, Repo: "ftp://feed"}, errs.ErrCodeInvalidInput},
		{"test file", Config{Mode: ModeTest, Repo: file}, ""},
		{"offline missing", Config{Mode: ModeOffline, Repo: file + ".missing"}, errs.ErrCodeInvalidPath},
		{"test dir", Config{Mode: ModeTest, Repo: filepath.Dir(file)}, errs.ErrCodeInvalidPath},
		{"bad mode", Config{Mode: "cloud", Repo: file}, errs.ErrCodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
			if !errs.IsValidation(err) {
				t.Errorf("IsValidation(%v) = false", err)
			}
		})
	}
}

func TestLoadStaticFormats(t *testing.T) {
	files := map[string]string{
		"repo.json": `{"A": ["B", "C"], "B": ["D"], "C": ["D"], "D": []}`,
		"repo.yaml": "A: [B, C]\nB: [D]\nC:\n  - D\nD: []\n",
		"repo.yml":  "A: [B, C]\nB: [D]\nC: [D]\nD: []\n",
		"repo.toml": "A = [\"B\", \"C\"]\nB = [\"D\"]\nC = [\"D\"]\nD = []\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			s, err := LoadStatic(writeFile(t, name, content), TestNamePattern)
			if err != nil {
				t.Fatalf("LoadStatic: %v", err)
			}
			if s.Len() != 4 {
				t.Errorf("Len() = %d, want 4", s.Len())
			}
			got, _ := s.Resolve(context.Background(), "A")
			if !slices.Equal(got, []string{"B", "C"}) {
				t.Errorf("Resolve(A) = %v", got)
			}
		})
	}
}

func TestLoadStaticErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"lowercase key", "repo.json", `{"a": ["B"]}`},
		{"digit key", "repo.json", `{"A1": []}`},
		{"malformed json", "repo.json", `{"A": [`},
		{"wrong value type", "repo.json", `{"A": "B"}`},
		{"malformed yaml", "repo.yaml", "A: [B\n"},
		{"malformed toml", "repo.toml", "A = [\"B\""},
		{"unknown extension", "repo.txt", "A: B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStatic(writeFile(t, tt.file, tt.content), TestNamePattern)
			if !errs.IsConfiguration(err) {
				t.Errorf("LoadStatic error = %v, want configuration error", err)
			}
		})
	}
}

func TestLoadStaticMissingFile(t *testing.T) {
	_, err := LoadStatic(filepath.Join(t.TempDir(), "none.json"), nil)
	if !errs.IsConfiguration(err) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadStatic error = %v", err)
	}
}

func TestStaticResolve(t *testing.T) {
	s := NewStatic(map[string][]string{"A": {"B"}})
	ctx := context.Background()

	got, err := s.Resolve(ctx, "Z")
	if err != nil || len(got) != 0 {
		t.Errorf("Resolve(unknown) = %v, %v; want empty, nil", got, err)
	}

	got, _ = s.Resolve(ctx, "A")
	got[0] = "X"
	again, _ := s.Resolve(ctx, "A")
	if again[0] != "B" {
		t.Error("Resolve must return a copy")
	}
}

func TestModeNamePattern(t *testing.T) {
	if !ModeOffline.NamePattern().MatchString("Newtonsoft.Json") {
		t.Error("offline mode should accept NuGet ids")
	}
	if ModeTest.NamePattern().MatchString("Newtonsoft.Json") {
		t.Error("test mode should reject non-uppercase names")
	}
	if ModeOffline.NamePattern().MatchString("../etc") {
		t.Error("offline mode should reject path-like names")
	}
}

func TestNewStaticModes(t *testing.T) {
	ctx := context.Background()
	ids := writeFile(t, "repo.json", `{"Serilog": ["Serilog.Sinks.File"]}`)

	if _, err := New(ctx, Config{Mode: ModeOffline, Repo: ids}); err != nil {
		t.Errorf("offline: %v", err)
	}
	if _, err := New(ctx, Config{Mode: ModeTest, Repo: ids}); !errs.IsConfiguration(err) {
		t.Errorf("test mode with real ids: %v, want configuration error", err)
	}
}

func TestNewOnlineBuildsGraph(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"App":  {Deps: []string{"Http", "Json"}},
		"Http": {Groups: []nugettest.Group{{Framework: "net8.0", Deps: []string{"Json"}}}},
		"Json": {},
	})
	backend, _ := cache.NewFileCache(t.TempDir())

	src, err := New(context.Background(), Config{
		Mode:     ModeOnline,
		Repo:     feed.IndexURL(),
		Cache:    backend,
		CacheTTL: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := deps.NewBuilder(src, deps.Options{MaxDepth: 3}).Build(context.Background(), "App")
	if err != nil {
		t.Fatal(err)
	}
	if got := depgraph.Sort(res.Graph).Packages; !slices.Equal(got, []string{"Json", "Http", "App"}) {
		t.Errorf("order = %v", got)
	}
	if feed.Hits("Json") != 1 {
		t.Errorf("Json fetched %d times, want 1", feed.Hits("Json"))
	}
}

func TestRegistryResolveErrors(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{"A": {Deps: []string{"Missing"}}})
	src, err := New(context.Background(), Config{
		Mode:          ModeOnline,
		Repo:          feed.IndexURL(),
		ClientOptions: []integrations.Option{integrations.WithBackoff(cache.Backoff{Attempts: 1})},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = src.Resolve(context.Background(), "Missing")
	if !errs.IsFetch(err) {
		t.Errorf("Resolve error = %v, want fetch error", err)
	}
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Resolve error = %v, want ErrNotFound in chain", err)
	}

	res, err := deps.NewBuilder(src, deps.Options{MaxDepth: 2}).Build(context.Background(), "A")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0].Name != "Missing" {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
}

func TestRegistryRejectsUnsafeIDs(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{
		"App":  {Deps: []string{"..", "../v3", "Http"}},
		"Http": {},
	})
	src, err := New(context.Background(), Config{Mode: ModeOnline, Repo: feed.IndexURL()})
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"..", ".", "../v3", "a/b", " "} {
		before := len(feed.Requests())
		_, err := src.Resolve(context.Background(), id)
		if !errs.IsFetch(err) {
			t.Errorf("Resolve(%q) error = %v, want fetch error", id, err)
		}
		if after := feed.Requests(); len(after) != before {
			t.Errorf("Resolve(%q) sent requests: %v", id, after[before:])
		}
	}

	res, err := deps.NewBuilder(src, deps.Options{MaxDepth: 2}).Build(context.Background(), "App")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, u := range res.Unresolved {
		names = append(names, u.Name)
	}
	if !slices.Equal(names, []string{"..", "../v3"}) {
		t.Errorf("Unresolved = %v, want the unsafe ids", names)
	}
	if got := depgraph.Sort(res.Graph).Packages; !slices.Equal(got, []string{"Http", "App"}) {
		t.Errorf("order = %v", got)
	}
}

func TestRegistryResolveCancelled(t *testing.T) {
	feed := nugettest.New(t, map[string]nugettest.Package{"A": {}})
	src, _ := New(context.Background(), Config{Mode: ModeOnline, Repo: feed.IndexURL()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.Resolve(ctx, "A")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve error = %v, want context.Canceled", err)
	}
}
