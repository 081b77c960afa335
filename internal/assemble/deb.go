package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// assembleDeb stages the container's output directory as a dpkg source
// tree, writes its DEBIAN/control file, and builds a .deb package.
func assembleDeb(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, target recipe.ImageTarget, containerOutDir, hostOutputDir string) (string, error) {
	stageRoot := "/tmp/" + nameVersion(rec)
	debianDir := stageRoot + "/DEBIAN"

	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("mkdir -p %s && cp -r %s/. %s", stageRoot, containerOutDir, stageRoot), nil, ""); err != nil {
		return "", fmt.Errorf("stage output tree: %w", err)
	}

	if err := sess.CreateDirs(ctx, debianDir); err != nil {
		return "", fmt.Errorf("create DEBIAN dir: %w", err)
	}

	control := renderDebControl(rec, target)
	controlTar, err := createTarArchive(tarEntry{name: "./control", contents: []byte(control)})
	if err != nil {
		return "", fmt.Errorf("build control archive: %w", err)
	}
	if err := sess.CopyFileInto(ctx, controlTar, debianDir); err != nil {
		return "", fmt.Errorf("upload control file: %w", err)
	}

	debName := fmt.Sprintf("%s_%s_%s.deb", rec.Name, rec.Version, rec.DebArch())
	debPath := "/tmp/" + debName
	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("dpkg-deb --build %s %s", stageRoot, debPath), nil, ""); err != nil {
		return "", fmt.Errorf("dpkg-deb --build: %w", err)
	}

	rc, err := sess.DownloadFiles(ctx, debPath)
	if err != nil {
		return "", fmt.Errorf("download package: %w", err)
	}
	defer rc.Close()

	dest, err := extractSingleFile(rc, hostOutputDir)
	if err != nil {
		return "", fmt.Errorf("extract package: %w", err)
	}
	return dest, nil
}

// renderDebControl builds the contents of a DEBIAN/control file from the
// recipe, scoping dependency buckets to target.Image.
func renderDebControl(rec *recipe.Recipe, target recipe.ImageTarget) string {
	deps := rec.ResolveDependencies(target.Image)

	var b strings.Builder
	fmt.Fprintf(&b, "Package: %s\n", rec.Name)
	fmt.Fprintf(&b, "Version: %s\n", rec.Version)
	fmt.Fprintf(&b, "Architecture: %s\n", rec.DebArch())
	if rec.Maintainer != "" {
		fmt.Fprintf(&b, "Maintainer: %s\n", rec.Maintainer)
	}
	if rec.Group != "" {
		fmt.Fprintf(&b, "Section: %s\n", rec.Group)
	}
	if rec.Deb != nil && rec.Deb.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", rec.Deb.Priority)
	}
	if len(deps.Depends) > 0 {
		fmt.Fprintf(&b, "Depends: %s\n", strings.Join(deps.Depends, ", "))
	}
	if len(deps.Conflicts) > 0 {
		fmt.Fprintf(&b, "Conflicts: %s\n", strings.Join(deps.Conflicts, ", "))
	}
	if len(deps.Provides) > 0 {
		fmt.Fprintf(&b, "Provides: %s\n", strings.Join(deps.Provides, ", "))
	}
	fmt.Fprintf(&b, "Description: %s\n", rec.Description)
	return b.String()
}
