// Package nuget provides an HTTP client for NuGet v3 feeds.
//
// # Overview
//
// A feed is identified by its service index (for nuget.org,
// https://api.nuget.org/v3/index.json). The client reads the index once to
// find the PackageBaseAddress resource, then uses the flat-container layout
// below it:
//
//	{base}/{id}/index.json                   version list
//	{base}/{id}/{version}/{id}.nuspec        manifest
//
// Ids and versions are lower-cased in URLs only; the names reported to
// callers keep the case used in manifests.
//
// # Usage
//
//	client := nuget.NewClient(backend, nuget.DefaultIndexURL, 24*time.Hour)
//	pkg, err := client.FetchPackage(ctx, "Newtonsoft.Json", false)
//	fmt.Println(pkg.Version, pkg.DependencyIDs())
//
// # Versions
//
// [Latest] chooses the highest stable semantic version. Version ranges
// declared by dependencies are recorded in [Dependency] but never used to
// pick a version.
package nuget
