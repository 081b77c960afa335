package job

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkgforge/pkgforge/internal/fetch"
	"github.com/pkgforge/pkgforge/internal/paths"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// stageSources fetches rec's declared source to a scratch directory on
// the host and streams it into the container's build directory as a
// tar archive.
func stageSources(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, dirs recipe.ContainerDirs) error {
	fetcher, err := fetch.New(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStageSourcesFailed, err)
	}

	scratchRoot := paths.ScratchDir()
	if err := os.MkdirAll(scratchRoot, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: create scratch root: %v", ErrStageSourcesFailed, err)
	}
	scratch, err := os.MkdirTemp(scratchRoot, "pkgforge-src-")
	if err != nil {
		return fmt.Errorf("%w: create scratch dir: %v", ErrStageSourcesFailed, err)
	}
	defer os.RemoveAll(scratch)

	if err := fetcher.Fetch(ctx, scratch); err != nil {
		return fmt.Errorf("%w: %v", ErrStageSourcesFailed, err)
	}

	if err := sess.CreateDirs(ctx, dirs.BldDir); err != nil {
		return fmt.Errorf("%w: create build dir: %v", ErrStageSourcesFailed, err)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(tarDir(pw, scratch))
	}()

	if err := sess.CopyFileInto(ctx, pr, dirs.BldDir); err != nil {
		return fmt.Errorf("%w: upload sources: %v", ErrStageSourcesFailed, err)
	}
	return nil
}

// tarDir writes the contents of hostDir to w as a tar archive, with
// archive paths relative to hostDir's root.
func tarDir(w io.Writer, hostDir string) error {
	tw := tar.NewWriter(w)
	err := filepath.WalkDir(hostDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(hostDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}
	return tw.Close()
}
