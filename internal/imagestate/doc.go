// Package imagestate persists the cache of previously-built images to
// disk, keyed by [recipe.RecipeTarget].
//
// Building an image is the expensive step in the pipeline: it installs
// packages and runs OS detection.
// [ImagesState] lets internal/imagebuilder skip that work when an
// earlier run already produced a usable image for the same recipe,
// image, and build target.
//
// State is encoded with encoding/gob, which carries its own type
// description and needs no schema to round-trip the [ImageState]
// values it stores — the same self-describing property the original
// binary state file format relied on. Saves are atomic: the encoded
// state is written to a temporary file in the same directory and
// renamed into place, so a crash mid-save never corrupts the existing
// file.
package imagestate
