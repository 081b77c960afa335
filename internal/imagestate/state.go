package imagestate

import (
	"encoding/json"
	"time"

	"github.com/pkgforge/pkgforge/internal/recipe"
)

// Os identifies the operating system family and version detected inside
// a built image.
type Os struct {
	Distro  string
	Version string
}

// ImageState is the saved metadata of one built image: the one piece of
// history internal/imagebuilder needs to decide whether it can reuse an
// existing image instead of building a new one.
type ImageState struct {
	ID        string
	Image     string
	Tag       string
	Os        Os
	Timestamp time.Time

	// Details is the raw inspect response from the container backend, kept
	// opaque since the state store has no use for its contents beyond
	// round-tripping it alongside the rest of the record.
	Details json.RawMessage

	Deps   map[string]bool
	Simple bool
}

// HasDep reports whether dep was recorded as installed in this image.
func (s ImageState) HasDep(dep string) bool {
	return s.Deps[dep]
}

// DepsEqual reports whether deps names exactly the set of dependencies
// recorded in s, independent of order.
func (s ImageState) DepsEqual(deps []string) bool {
	if len(deps) != len(s.Deps) {
		return false
	}
	for _, d := range deps {
		if !s.Deps[d] {
			return false
		}
	}
	return true
}

// NewImageState builds the state record for a freshly built or reused
// image.
func NewImageState(id string, target recipe.RecipeTarget, tag string, timestamp time.Time, os Os, details json.RawMessage, deps []string, simple bool) ImageState {
	depSet := make(map[string]bool, len(deps))
	for _, d := range deps {
		depSet[d] = true
	}
	return ImageState{
		ID:        id,
		Image:     target.Image,
		Tag:       tag,
		Os:        os,
		Timestamp: timestamp,
		Details:   details,
		Deps:      depSet,
		Simple:    simple,
	}
}
