package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkgforge/pkgforge/internal/batch"
	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/paths"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// Represents the 'pkgforge build' command.
type BuildCmd struct {
	Recipes    []string `arg:"" help:"Paths to recipe files to build." type:"existingfile"`
	Output     string   `short:"o" help:"Output directory for built packages. Defaults to the XDG data directory." placeholder:"DIR"`
	StateFile  string   `short:"s" help:"Path to the image state file." default:".pkger.state" placeholder:"PATH"`
	DockerHost string   `help:"Docker Engine API address. Defaults to $DOCKER_HOST or the local socket." placeholder:"HOST"`
	Jobs       int      `short:"j" help:"Maximum concurrent build jobs per recipe." default:"1"`
}

// Executes the build command: loads each recipe and builds every image
// target it declares, reporting per-target failures without aborting
// the remaining recipes.
func (c *BuildCmd) Run(ctx context.Context) error {
	output := c.Output
	if output == "" {
		output = paths.DefaultOutputDir()
	}
	if err := os.MkdirAll(output, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	state, err := imagestate.Load(c.StateFile)
	if err != nil {
		return fmt.Errorf("load image state: %w", err)
	}

	rt, err := runtime.New(c.DockerHost)
	if err != nil {
		return fmt.Errorf("connect to container runtime: %w", err)
	}
	defer rt.Close()

	failed := 0
	for _, path := range c.Recipes {
		rec, err := recipe.Load(path)
		if err != nil {
			slog.Error("failed to load recipe", "path", path, "error", err)
			failed++
			continue
		}

		results, err := batch.Run(ctx, batch.Options{
			Runtime:       rt,
			State:         state,
			RecipeDir:     filepath.Dir(path),
			Recipe:        rec,
			HostOutputDir: output,
			Jobs:          c.Jobs,
		})
		if err != nil {
			slog.Error("batch aborted", "recipe", rec.Name, "error", err)
		}

		for _, res := range results {
			if res.Err != nil {
				slog.Error("build failed", "recipe", rec.Name, "image", res.Target.Image, "target", res.Target.Target, "error", res.Err)
				failed++
				continue
			}
			slog.Info("build succeeded", "recipe", rec.Name, "image", res.Target.Image, "target", res.Target.Target, "artifact", res.Result.ArtifactPath)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d build target(s) failed", failed)
	}
	return nil
}
