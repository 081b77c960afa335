package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkgforge/pkgforge/internal/assemble"
	"github.com/pkgforge/pkgforge/internal/imagebuilder"
	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
	"github.com/pkgforge/pkgforge/internal/scripts"
)

// Options controls a single build job.
type Options struct {
	Runtime      *runtime.Runtime
	State        *imagestate.ImagesState
	RecipeDir    string // Directory the recipe file was loaded from.
	Recipe       *recipe.Recipe
	Target       recipe.ImageTarget
	HostOutputDir string
}

// Result is returned after a successful job.
type Result struct {
	ArtifactPath string
	ImageState   imagestate.ImageState
}

// Run executes the full pipeline for one (recipe, target) pair: ensure
// the build image, start a container session, stage sources, run the
// script phases, assemble the package, and return its path.
//
// The container session is always closed before Run returns, success or
// failure.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := slog.With("recipe", opts.Recipe.Name, "image", opts.Target.Image, "target", opts.Target.Target)
	log.Info("starting job")

	imgState, err := imagebuilder.EnsureImage(ctx, opts.Runtime, opts.State, opts.RecipeDir, opts.Recipe, opts.Target)
	if err != nil {
		return nil, fmt.Errorf("ensure image: %w", err)
	}

	containerID := fmt.Sprintf("pkgforge-%s-%s-%s-build", opts.Recipe.Name, opts.Target.Image, opts.Target.Target)
	sess, err := opts.Runtime.StartContainer(ctx, imgState.Tag, containerID)
	if err != nil {
		return nil, fmt.Errorf("start build session: %w", err)
	}
	defer sess.Close(ctx)

	dirs := recipe.DefaultContainerDirs()

	if err := stageSources(ctx, sess, opts.Recipe, dirs); err != nil {
		return nil, err
	}

	if err := sess.CreateDirs(ctx, dirs.OutDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	if err := scripts.Execute(ctx, sess, opts.Recipe, opts.Target, dirs); err != nil {
		return nil, fmt.Errorf("execute scripts: %w", err)
	}

	artifactPath, err := assemble.Assemble(ctx, sess, opts.Recipe, opts.Target, imgState, dirs.OutDir, opts.HostOutputDir)
	if err != nil {
		return nil, fmt.Errorf("assemble package: %w", err)
	}

	log.Info("job finished", "artifact", artifactPath)
	return &Result{ArtifactPath: artifactPath, ImageState: imgState}, nil
}
