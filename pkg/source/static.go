package source

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
)

// Format is the encoding of a static repository file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor infers the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidConfig, "unsupported repository file %q (want .json, .yaml, .yml or .toml)", filepath.Base(path))
}

// Static serves dependencies from a preloaded mapping of package name to
// its direct dependencies.
//
// In JSON:
//
//	{"A": ["B", "C"], "B": ["D"], "C": ["D"], "D": []}
//
// The same mapping may be written in YAML or TOML.
type Static struct {
	deps map[string][]string
}

// LoadStatic reads a repository file and validates every package name in it
// against pattern. A nil pattern accepts any name.
func LoadStatic(path string, pattern *regexp.Regexp) (*Static, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read repository %s", path)
	}
	s, err := ParseStatic(data, format, pattern)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "load repository %s", path)
	}
	return s, nil
}

// ParseStatic decodes a repository document and validates it; see
// [LoadStatic].
func ParseStatic(data []byte, format Format, pattern *regexp.Regexp) (*Static, error) {
	m := make(map[string][]string)
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown repository format %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", format)
	}
	if err := validateNames(m, pattern); err != nil {
		return nil, err
	}
	return &Static{deps: m}, nil
}

// NewStatic wraps an in-memory mapping without validation.
func NewStatic(m map[string][]string) *Static {
	c := make(map[string][]string, len(m))
	for k, v := range m {
		c[k] = slices.Clone(v)
	}
	return &Static{deps: c}
}

func validateNames(m map[string][]string, pattern *regexp.Regexp) error {
	if pattern == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !pattern.MatchString(k) {
			return errs.New(errs.ErrCodeInvalidConfig, "invalid package name %q (must match %s)", k, pattern)
		}
	}
	return nil
}

// Resolve returns a copy of the dependencies of name. Unknown names have no
// dependencies.
func (s *Static) Resolve(_ context.Context, name string) ([]string, error) {
	return slices.Clone(s.deps[name]), nil
}

// Len returns the number of packages in the repository.
func (s *Static) Len() int { return len(s.deps) }

var _ deps.Source = (*Static)(nil)
