package imagebuilder

import (
	"testing"
	"time"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
)

func TestCachedDepsMatch(t *testing.T) {
	target := recipe.RecipeTarget{RecipeName: "hello", Image: "debian"}
	now := time.Now()

	cached := imagestate.NewImageState("id", target, "tag", now, imagestate.Os{}, nil,
		[]string{"gcc", "make", "build-essential", "dpkg-dev", "fakeroot"}, false)

	if !cachedDepsMatch(cached, []string{"gcc", "make"}, false) {
		t.Error("cachedDepsMatch() = false, want true when cached superset contains declared deps plus defaults")
	}

	if cachedDepsMatch(cached, []string{"gcc", "clang"}, false) {
		t.Error("cachedDepsMatch() = true, want false when a declared dep is missing")
	}

	exact := imagestate.NewImageState("id", target, "tag", now, imagestate.Os{}, nil, []string{"gcc", "make"}, false)
	if !cachedDepsMatch(exact, []string{"gcc", "make"}, true) {
		t.Error("cachedDepsMatch() with skipDefaults = true, want exact-set match to succeed")
	}
	if cachedDepsMatch(exact, []string{"gcc"}, true) {
		t.Error("cachedDepsMatch() with skipDefaults = true, want exact-set mismatch to fail")
	}
}
