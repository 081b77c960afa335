package imagestate

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkgforge/pkgforge/internal/recipe"
)

// DefaultStateFile is the conventional state file name used when the
// caller does not configure one explicitly.
const DefaultStateFile = ".pkger.state"

var ErrStateFileCorrupt = errors.New("image state file corrupt")

// gobRecord is the on-disk shape of ImagesState. RecipeTarget cannot be a
// gob map key directly across versions without a registered concrete
// type, so it travels as a flat slice of key/value pairs instead.
type gobRecord struct {
	Entries []gobEntry
}

type gobEntry struct {
	Target recipe.RecipeTarget
	State  ImageState
}

// ImagesState is the full set of known image states, keyed by the
// recipe/image/target triple they were built for.
type ImagesState struct {
	mu        sync.RWMutex
	images    map[recipe.RecipeTarget]ImageState
	stateFile string
}

// Load reads the state file at path, creating an empty one if it does
// not yet exist. A non-empty file that fails to decode is reported as
// [ErrStateFileCorrupt].
func Load(path string) (*ImagesState, error) {
	if path == "" {
		path = DefaultStateFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if f, cerr := os.Create(path); cerr != nil {
			return nil, fmt.Errorf("create state file %s: %w", path, cerr)
		} else {
			f.Close()
		}
		return &ImagesState{
			images:    make(map[recipe.RecipeTarget]ImageState),
			stateFile: path,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file %s: %w", path, err)
	}

	if len(data) == 0 {
		return &ImagesState{
			images:    make(map[recipe.RecipeTarget]ImageState),
			stateFile: path,
		}, nil
	}

	var rec gobRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStateFileCorrupt, path, err)
	}

	images := make(map[recipe.RecipeTarget]ImageState, len(rec.Entries))
	for _, e := range rec.Entries {
		images[e.Target] = e.State
	}

	return &ImagesState{images: images, stateFile: path}, nil
}

// StateFile returns the path the store was loaded from and saves to.
func (s *ImagesState) StateFile() string {
	return s.stateFile
}

// Lookup returns the recorded state for target, if any.
func (s *ImagesState) Lookup(target recipe.RecipeTarget) (ImageState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.images[target]
	return state, ok
}

// Update records state as the current known state for target, replacing
// any previous entry.
func (s *ImagesState) Update(target recipe.RecipeTarget, state ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[target] = state
}

// Save encodes the full state and atomically replaces the state file:
// the encoded bytes are written to a temporary file in the same
// directory, then renamed over the destination, so a process killed
// mid-write never leaves a truncated or partially-written state file.
// The write lock is held for the whole save, so concurrent saves reach
// the disk one after another and each reflects every earlier Update.
func (s *ImagesState) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := gobRecord{Entries: make([]gobEntry, 0, len(s.images))}
	for target, state := range s.images {
		rec.Entries = append(rec.Entries, gobEntry{Target: target, State: state})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.stateFile)
	tmp, err := os.CreateTemp(dir, ".pkger.state.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.stateFile); err != nil {
		// Cross-device renames (e.g. tmpfs /tmp vs. a bind-mounted state
		// dir) fail with EXDEV; fall back to copy-then-remove.
		if linkErr, ok := err.(*os.LinkError); ok && linkErr.Err.Error() == "invalid cross-device link" {
			if werr := os.WriteFile(s.stateFile, buf.Bytes(), 0o644); werr != nil {
				return fmt.Errorf("write state file %s: %w", s.stateFile, werr)
			}
			return nil
		}
		return fmt.Errorf("rename state file into place: %w", err)
	}
	return nil
}
