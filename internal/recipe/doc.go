// Package recipe is the in-memory representation of a buildable package
// description: metadata, per-image targets, dependency declarations, and
// the three script phases (configure, build, install) that produce it.
//
// A [Recipe] is immutable once loaded. Derived values (architecture
// strings, the RPM release, resolved per-image dependency lists) are
// computed on demand rather than stored, so a [Recipe] can be shared
// safely across concurrently-running jobs.
//
// Recipes are parsed from TOML files by [Load]. The core build pipeline
// (internal/job, internal/imagebuilder, internal/scripts,
// internal/assemble) never parses recipe text itself; it only consumes
// already-validated [Recipe] values.
package recipe
