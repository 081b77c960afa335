package batch

import (
	"context"
	"testing"

	"github.com/pkgforge/pkgforge/internal/recipe"
)

func TestRunNoImages(t *testing.T) {
	rec := &recipe.Recipe{Name: "empty"}

	_, err := Run(context.Background(), Options{Recipe: rec})
	if err == nil {
		t.Fatal("Run() with no images: want error, got nil")
	}
}
