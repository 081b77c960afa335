package imagestate

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkgforge/pkgforge/internal/recipe"
)

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pkger.state")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.StateFile() != path {
		t.Errorf("StateFile() = %q, want %q", s.StateFile(), path)
	}
	if _, ok := s.Lookup(recipe.RecipeTarget{RecipeName: "hello"}); ok {
		t.Error("Lookup() on fresh store found an entry")
	}
}

func TestUpdateSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pkger.state")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := recipe.RecipeTarget{RecipeName: "hello", Image: "debian", BuildTarget: recipe.TargetDEB}
	state := NewImageState(
		"sha256:abc123",
		target,
		"hello-debian:1690000000",
		time.Unix(1690000000, 0).UTC(),
		Os{Distro: "debian", Version: "12"},
		[]byte(`{"Architecture":"amd64"}`),
		[]string{"gcc", "make"},
		false,
	)
	s.Update(target, state)

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}

	got, ok := reloaded.Lookup(target)
	if !ok {
		t.Fatal("Lookup() after reload found nothing")
	}

	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("round-tripped state mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateOverwritesExistingEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pkger.state")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := recipe.RecipeTarget{RecipeName: "hello", Image: "debian", BuildTarget: recipe.TargetDEB}
	s.Update(target, NewImageState("sha256:old", target, "old", time.Now(), Os{}, nil, nil, false))
	s.Update(target, NewImageState("sha256:new", target, "new", time.Now(), Os{}, nil, nil, false))

	got, ok := s.Lookup(target)
	if !ok {
		t.Fatal("Lookup() found nothing")
	}
	if got.ID != "sha256:new" {
		t.Errorf("ID = %q, want sha256:new", got.ID)
	}
}

func TestImageStateDepsEqual(t *testing.T) {
	target := recipe.RecipeTarget{RecipeName: "hello"}
	state := NewImageState("id", target, "tag", time.Now(), Os{}, nil, []string{"gcc", "make"}, false)

	if !state.DepsEqual([]string{"make", "gcc"}) {
		t.Error("DepsEqual() with same set in different order = false, want true")
	}
	if state.DepsEqual([]string{"gcc"}) {
		t.Error("DepsEqual() with subset = true, want false")
	}
	if !state.HasDep("gcc") || state.HasDep("clang") {
		t.Error("HasDep() mismatch")
	}
}
