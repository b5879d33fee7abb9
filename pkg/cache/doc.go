// Package cache provides content-addressed caching for pipeline
// artifacts: described scenes, built graphs, computed layouts, and
// rendered output.
//
// # Overview
//
// The [Cache] interface abstracts storage; three backends exist:
//
//   - [NewFileCache]: directory-backed, for CLI usage
//   - [NewRedisCache]: Redis-backed, for server deployments
//   - [NewNullCache]: no-op, for tests and --no-cache runs
//
// # Keys
//
// A [Keyer] derives stable cache keys from content hashes plus the
// options that change the result. Identical scene + identical options
// always map to the same key, so repeated runs hit the cache:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{Width: 1000, Height: 1000, Seed: 42})
//
// [NewScopedKeyer] prefixes every key for tenant isolation when one
// Redis instance serves multiple users.
//
// # Retries
//
// Remote lookups that fail transiently can be wrapped with [Retryable]
// and driven through [RetryWithBackoff]. Local backends never retry.
package cache
