package assemble

import (
	"context"
	"fmt"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// Assemble builds the final package artifact for target inside sess and
// downloads it into hostOutputDir, returning the path it was written to.
// containerOutDir is the build container's install output directory
// (recipe.ContainerDirs.OutDir).
func Assemble(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, target recipe.ImageTarget, state imagestate.ImageState, containerOutDir, hostOutputDir string) (string, error) {
	var (
		path string
		err  error
	)

	switch target.Target {
	case recipe.TargetGZIP:
		path, err = assembleGzip(ctx, sess, rec, containerOutDir, hostOutputDir)
	case recipe.TargetDEB:
		path, err = assembleDeb(ctx, sess, rec, target, containerOutDir, hostOutputDir)
	case recipe.TargetRPM:
		path, err = assembleRpm(ctx, sess, rec, target, state, containerOutDir, hostOutputDir)
	default:
		return "", fmt.Errorf("assemble: unknown build target %q", target.Target)
	}

	if err != nil {
		return "", &ErrPackageAssemblyFailed{Format: string(target.Target), Cause: err}
	}
	return path, nil
}

func nameVersion(rec *recipe.Recipe) string {
	return rec.Name + "-" + rec.Version
}
