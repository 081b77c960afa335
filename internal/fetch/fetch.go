package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkgforge/pkgforge/internal/recipe"
)

// ErrNoSource is returned by New when a recipe declares neither a git
// source nor a plain source URL/path.
var ErrNoSource = errors.New("recipe declares no source")

// Fetcher retrieves a recipe's source tree into dest on the host.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
}

// New selects the Fetcher appropriate for rec's declared source: a git
// fetcher when rec.Git is set, otherwise an HTTP(S)/local-path fetcher
// for rec.Source.
func New(rec *recipe.Recipe) (Fetcher, error) {
	if rec.Git != nil {
		return &gitFetcher{url: rec.Git.URL(), branch: rec.Git.Branch()}, nil
	}
	if rec.Source != "" {
		return &httpFetcher{source: rec.Source}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSource, rec.Name)
}
