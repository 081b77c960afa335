package assemble

import (
	"context"
	"fmt"

	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// assembleGzip tars up the container's output directory and downloads
// the result as a single file.
func assembleGzip(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, containerOutDir, hostOutputDir string) (string, error) {
	archiveName := nameVersion(rec) + ".tar.gz"
	archivePath := "/tmp/" + archiveName

	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("tar -czf %s -C %s .", archivePath, containerOutDir), nil, ""); err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}

	rc, err := sess.DownloadFiles(ctx, archivePath)
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}
	defer rc.Close()

	dest, err := extractSingleFile(rc, hostOutputDir)
	if err != nil {
		return "", fmt.Errorf("extract archive: %w", err)
	}
	return dest, nil
}
