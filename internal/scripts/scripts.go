package scripts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

const defaultShell = "/bin/sh"

// Execute runs the recipe's configure, build, and install phases in
// that fixed order. A missing configure or install phase is skipped; a
// failing step in any phase aborts execution before later phases run.
func Execute(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, target recipe.ImageTarget, dirs recipe.ContainerDirs) error {
	if rec.ConfigureScript != nil {
		if err := RunPhase(ctx, sess, "configure", rec.ConfigureScript, dirs.BldDir, target, dirs); err != nil {
			return err
		}
	} else {
		slog.Debug("no configure steps to run")
	}

	if err := RunPhase(ctx, sess, "build", &rec.BuildScript, dirs.BldDir, target, dirs); err != nil {
		return err
	}

	if rec.InstallScript != nil {
		if err := RunPhase(ctx, sess, "install", rec.InstallScript, dirs.OutDir, target, dirs); err != nil {
			return err
		}
	} else {
		slog.Debug("no install steps to run")
	}

	return nil
}

// RunPhase executes one script phase's steps in declared order inside
// sess. defaultDir is used as the working directory when the phase
// itself does not specify one.
func RunPhase(ctx context.Context, sess *runtime.Session, phaseName string, phase *recipe.Phase, defaultDir string, target recipe.ImageTarget, dirs recipe.ContainerDirs) error {
	workdir := defaultDir
	if phase.WorkingDir != "" {
		workdir = substituteDirs(phase.WorkingDir, dirs)
	}

	shell := defaultShell
	if phase.Shell != "" {
		shell = phase.Shell
	}

	for _, step := range phase.Steps {
		if !stepApplies(step, target) {
			slog.Debug("skipping step", "phase", phaseName, "cmd", step.Cmd)
			continue
		}

		slog.Debug("running step", "phase", phaseName, "cmd", step.Cmd)
		result, err := sess.Exec(ctx, shell, step.Cmd, nil, workdir)
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return &ErrBuildStepFailed{
				Phase:    phaseName,
				Cmd:      step.Cmd,
				ExitCode: result.ExitCode,
				Stderr:   result.Stderr,
			}
		}
	}

	return nil
}

// stepApplies decides whether a step runs for the current image/target,
// per the image-allow-list and build-target filters. An explicit
// build-target filter on a step overrides an image-list exclusion: the
// step is still evaluated against the target filter even when the
// image isn't in its allow-list.
func stepApplies(step recipe.Step, target recipe.ImageTarget) bool {
	if len(step.Images) > 0 && !contains(step.Images, target.Image) {
		if !step.HasTargetFilter() {
			return false
		}
	}

	if step.HasTargetFilter() && step.Target != target.Target {
		return false
	}

	return true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// substituteDirs replaces the $PKGER_BLD_DIR and $PKGER_OUT_DIR
// placeholders with the session's canonical interior paths. This is a
// literal substring replacement, not a general template engine.
func substituteDirs(s string, dirs recipe.ContainerDirs) string {
	s = strings.ReplaceAll(s, "$PKGER_BLD_DIR", dirs.BldDir)
	s = strings.ReplaceAll(s, "$PKGER_OUT_DIR", dirs.OutDir)
	return s
}
