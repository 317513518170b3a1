package nuget

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// nuspec mirrors the parts of a .nuspec manifest that depwalk reads. Tags
// carry no namespace so every nuspec schema revision decodes the same way.
type nuspec struct {
	Metadata struct {
		ID           string `xml:"id"`
		Version      string `xml:"version"`
		Description  string `xml:"description"`
		Dependencies struct {
			Groups []struct {
				TargetFramework string          `xml:"targetFramework,attr"`
				Dependencies    []xmlDependency `xml:"dependency"`
			} `xml:"group"`
			Dependencies []xmlDependency `xml:"dependency"`
		} `xml:"dependencies"`
	} `xml:"metadata"`
}

type xmlDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

// packageInfo flattens the manifest: grouped dependencies first, in group
// order, then ungrouped ones. Entries without an id are dropped; duplicates
// are kept so callers can see every declaring framework.
func (n *nuspec) packageInfo(id, version string) PackageInfo {
	m := n.Metadata
	info := PackageInfo{
		ID:           id,
		Version:      version,
		Description:  strings.TrimSpace(m.Description),
		Dependencies: []Dependency{},
	}
	if m.ID != "" {
		info.ID = m.ID
	}
	if m.Version != "" {
		info.Version = m.Version
	}
	add := func(d xmlDependency, tfm string) {
		if id := strings.TrimSpace(d.ID); id != "" {
			info.Dependencies = append(info.Dependencies, Dependency{ID: id, Version: d.Version, TargetFramework: tfm})
		}
	}
	for _, g := range m.Dependencies.Groups {
		for _, d := range g.Dependencies {
			add(d, g.TargetFramework)
		}
	}
	for _, d := range m.Dependencies.Dependencies {
		add(d, "")
	}
	return info
}

// Latest picks the highest version from a feed's version list.
//
// Versions are compared as NuGet versions: semantic versions with an optional
// fourth numeric revision segment (1.0.118.0). Stable releases win over
// prereleases; a prerelease is only returned when nothing stable exists.
// Entries that do not parse are ignored unless none parse, in which case the
// lexicographic maximum is returned. ok is false for an empty list.
func Latest(versions []string) (v string, ok bool) {
	if len(versions) == 0 {
		return "", false
	}

	var stable, pre *version
	for _, raw := range versions {
		pv, parsed := parseVersion(raw)
		if !parsed {
			continue
		}
		if pv.sv.Prerelease() == "" {
			if stable == nil || pv.compare(stable) > 0 {
				stable = pv
			}
		} else if pre == nil || pv.compare(pre) > 0 {
			pre = pv
		}
	}

	switch {
	case stable != nil:
		return stable.raw, true
	case pre != nil:
		return pre.raw, true
	default:
		return slices.Max(versions), true
	}
}

// version is a parsed NuGet version. The revision is the optional fourth
// release segment semver does not model.
type version struct {
	raw string
	sv  *semver.Version
	rev uint64
}

func parseVersion(raw string) (*version, bool) {
	s, meta, hasMeta := strings.Cut(strings.TrimSpace(raw), "+")
	release, pre, hasPre := strings.Cut(s, "-")

	var rev uint64
	if parts := strings.Split(release, "."); len(parts) == 4 {
		n, err := strconv.ParseUint(parts[3], 10, 64)
		if err != nil {
			return nil, false
		}
		rev = n
		release = strings.Join(parts[:3], ".")
	}
	if hasPre {
		release += "-" + pre
	}
	if hasMeta {
		release += "+" + meta
	}

	sv, err := semver.NewVersion(release)
	if err != nil {
		return nil, false
	}
	return &version{raw: raw, sv: sv, rev: rev}, true
}

// compare orders by major, minor, patch, revision, then prerelease.
func (v *version) compare(o *version) int {
	if c := cmp.Compare(v.sv.Major(), o.sv.Major()); c != 0 {
		return c
	}
	if c := cmp.Compare(v.sv.Minor(), o.sv.Minor()); c != 0 {
		return c
	}
	if c := cmp.Compare(v.sv.Patch(), o.sv.Patch()); c != 0 {
		return c
	}
	if c := cmp.Compare(v.rev, o.rev); c != 0 {
		return c
	}
	return v.sv.Compare(o.sv)
}
