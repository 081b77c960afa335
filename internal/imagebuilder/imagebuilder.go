package imagebuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// EnsureImage produces or reuses a container image for the given
// (recipe, image) pair, installing its build dependencies, and records
// the resulting [imagestate.ImageState] in state.
//
// recipeDir is the directory the recipe file was loaded from; a
// Dockerfile, if any, is looked up at recipeDir/images/<image>/Dockerfile.
func EnsureImage(ctx context.Context, rt *runtime.Runtime, state *imagestate.ImagesState, recipeDir string, rec *recipe.Recipe, target recipe.ImageTarget) (imagestate.ImageState, error) {
	log := slog.With("image", target.Image, "recipe", rec.Name)

	def, err := resolveBaseImage(recipeDir, target.Image)
	if err != nil {
		return imagestate.ImageState{}, &ErrImageBuildFailed{Image: target.Image, Cause: err}
	}

	wantDeps := rec.ResolveDependencies(target.Image).BuildDepends
	recipeTarget := rec.Target(target)

	if cached, ok := state.Lookup(recipeTarget); ok {
		_, exists, err := rt.ImageExists(ctx, cached.ID)
		if err == nil && exists && cached.Simple == def.Simple && cachedDepsMatch(cached, wantDeps, rec.SkipDefaultDeps) {
			log.Debug("reusing cached image", "id", cached.ID)
			return cached, nil
		}
	}

	log.Debug("building image", "simple", def.Simple)

	baseTag := fmt.Sprintf("pkgforge-base/%s:latest", target.Image)
	if err := rt.BuildImage(ctx, def.Dockerfile, baseTag); err != nil {
		return imagestate.ImageState{}, &ErrImageBuildFailed{Image: target.Image, Cause: err}
	}

	containerID := fmt.Sprintf("pkgforge-%s-%s-provision", rec.Name, target.Image)
	sess, err := rt.StartContainer(ctx, baseTag, containerID)
	if err != nil {
		return imagestate.ImageState{}, &ErrImageBuildFailed{Image: target.Image, Cause: err}
	}
	defer sess.Close(ctx)

	os, err := detectOS(ctx, sess)
	if err != nil {
		return imagestate.ImageState{}, &ErrOsDetectionFailed{Image: target.Image, Cause: err}
	}

	pm, ok := packageManagers[os.Distro]
	if !ok {
		return imagestate.ImageState{}, &ErrDependencyInstallFailed{
			Image: target.Image,
			Cause: fmt.Errorf("no package manager known for OS family %q", os.Distro),
		}
	}

	deps := append([]string{}, wantDeps...)
	if !rec.SkipDefaultDeps {
		deps = append(deps, pm.DefaultDeps...)
	}

	if len(deps) > 0 {
		if _, err := sess.CheckedExec(ctx, "/bin/sh", pm.InstallCmd(deps), nil, ""); err != nil {
			return imagestate.ImageState{}, &ErrDependencyInstallFailed{Image: target.Image, Cause: err}
		}
	}

	timestamp := time.Now().UTC()
	tag := fmt.Sprintf("%s-%d", target.Image, timestamp.Unix())
	if err := rt.CommitContainer(ctx, sess.ID(), tag); err != nil {
		return imagestate.ImageState{}, &ErrImageBuildFailed{Image: target.Image, Cause: err}
	}

	raw, _, err := rt.ImageExists(ctx, tag)
	if err != nil {
		return imagestate.ImageState{}, &ErrImageBuildFailed{Image: target.Image, Cause: err}
	}

	newState := imagestate.NewImageState(tag, recipeTarget, tag, timestamp, os, json.RawMessage(raw), deps, def.Simple)

	state.Update(recipeTarget, newState)
	if err := state.Save(); err != nil {
		return imagestate.ImageState{}, fmt.Errorf("save image state: %w", err)
	}

	log.Debug("image built", "tag", tag)
	return newState, nil
}

// cachedDepsMatch reports whether a cached state's recorded dependency
// set still matches what the recipe currently demands. When default
// deps are in play, the cached set additionally carries whatever OS
// family defaults were installed at build time, so an exact-set
// comparison against the recipe's own declared deps would always miss;
// membership (cached ⊇ declared) is the meaningful check in that case.
func cachedDepsMatch(cached imagestate.ImageState, declared []string, skipDefaults bool) bool {
	if skipDefaults {
		return cached.DepsEqual(declared)
	}
	for _, d := range declared {
		if !cached.HasDep(d) {
			return false
		}
	}
	return true
}
