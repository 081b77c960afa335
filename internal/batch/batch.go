package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/job"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// Options controls a batch run over one recipe's declared images.
type Options struct {
	Runtime       *runtime.Runtime
	State         *imagestate.ImagesState
	RecipeDir     string
	Recipe        *recipe.Recipe
	HostOutputDir string
	Jobs          int // Maximum concurrent build jobs. Values <= 0 default to 1.
}

// JobResult pairs one image target's outcome with the target itself, so
// callers can report per-target success or failure after the batch
// completes.
type JobResult struct {
	Target recipe.ImageTarget
	Result *job.Result
	Err    error
}

// Run builds every image target declared by opts.Recipe, fanning them
// out across opts.Jobs concurrent goroutines. Sibling jobs are
// independent: one target failing does not cancel the others, so the
// supplied ctx (not a derived, cancel-on-error context) is threaded
// straight through to every job.Run call. Only an external cancellation
// of ctx itself (e.g. the top-level signal context) stops in-flight
// siblings early. Run itself returns the first job error, if any;
// results holds every target's JobResult.
func Run(ctx context.Context, opts Options) ([]JobResult, error) {
	if len(opts.Recipe.Images) == 0 {
		return nil, fmt.Errorf("recipe %s declares no images", opts.Recipe.Name)
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = 1
	}

	var group errgroup.Group
	group.SetLimit(workers)

	results := make([]JobResult, len(opts.Recipe.Images))

	for i, target := range opts.Recipe.Images {
		i, target := i, target
		group.Go(func() error {
			slog.Info("building target", "recipe", opts.Recipe.Name, "image", target.Image, "build_target", target.Target)

			res, err := job.Run(ctx, job.Options{
				Runtime:       opts.Runtime,
				State:         opts.State,
				RecipeDir:     opts.RecipeDir,
				Recipe:        opts.Recipe,
				Target:        target,
				HostOutputDir: opts.HostOutputDir,
			})
			results[i] = JobResult{Target: target, Result: res, Err: err}
			return err
		})
	}

	err := group.Wait()
	return results, err
}
