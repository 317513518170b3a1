// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// Each registry has its own subpackage; currently:
//
//   - [nuget]: NuGet v3 feeds (nuget.org, Azure Artifacts, self-hosted)
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing used by registry clients:
//
//   - JSON, XML and plain-text GET helpers
//   - Response caching through any [cache.Cache], keyed by namespace
//   - Retries with exponential backoff for network failures and 5xx responses
//   - Request and cache events reported to [observability] hooks
//
// Errors wrap [ErrNotFound], [ErrNetwork] or [ErrInvalidResponse] so callers
// can classify failures with errors.Is.
//
// [nuget]: github.com/matzehuels/depwalk/pkg/integrations/nuget
// [cache.Cache]: github.com/matzehuels/depwalk/pkg/cache.Cache
// [observability]: github.com/matzehuels/depwalk/pkg/observability
package integrations
