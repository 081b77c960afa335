package assemble

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

const rpmBuildRoot = "/root/rpmbuild"

// assembleRpm builds the rpmbuild tree, packages the container's output
// directory as a source tarball, renders a spec file, and runs
// rpmbuild -bb to produce the final .rpm.
func assembleRpm(ctx context.Context, sess *runtime.Session, rec *recipe.Recipe, target recipe.ImageTarget, state imagestate.ImageState, containerOutDir, hostOutputDir string) (string, error) {
	name := nameVersion(rec)
	release := rec.RpmRelease()
	arch := rec.RpmArch()
	buildrootName := fmt.Sprintf("%s-%s.%s", name, release, arch)
	sourceTar := name + ".tar.gz"

	specsDir := rpmBuildRoot + "/SPECS"
	sourcesDir := rpmBuildRoot + "/SOURCES"
	rpmsDir := rpmBuildRoot + "/RPMS"
	rpmsArchDir := rpmsDir + "/" + arch
	srpmsDir := rpmBuildRoot + "/SRPMS"
	tmpBuildroot := "/tmp/" + buildrootName
	sourceTarPath := sourcesDir + "/" + sourceTar

	for _, dir := range []string{specsDir, sourcesDir, rpmsDir, rpmsArchDir, srpmsDir} {
		if err := sess.CreateDirs(ctx, dir); err != nil {
			return "", fmt.Errorf("create rpmbuild tree: %w", err)
		}
	}

	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("cp -r %s %s", containerOutDir, tmpBuildroot), nil, ""); err != nil {
		return "", fmt.Errorf("copy output to build root: %w", err)
	}

	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("tar -czf %s .", sourceTarPath), nil, tmpBuildroot); err != nil {
		return "", fmt.Errorf("create source tarball: %w", err)
	}

	files, err := findEntries(ctx, sess, tmpBuildroot, "f")
	if err != nil {
		return "", fmt.Errorf("enumerate source files: %w", err)
	}
	dirs, err := findEntries(ctx, sess, tmpBuildroot, "d")
	if err != nil {
		return "", fmt.Errorf("enumerate source dirs: %w", err)
	}

	spec, err := renderRpmSpec(rec, target, state, sourceTar, files, dirs)
	if err != nil {
		return "", fmt.Errorf("render spec: %w", err)
	}

	specFile := rec.Name + ".spec"
	specTar, err := createTarArchive(tarEntry{name: "./" + specFile, contents: []byte(spec)})
	if err != nil {
		return "", fmt.Errorf("build spec archive: %w", err)
	}
	if err := sess.CopyFileInto(ctx, specTar, specsDir); err != nil {
		return "", fmt.Errorf("upload spec: %w", err)
	}

	if _, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf("rpmbuild -bb %s/%s", specsDir, specFile), nil, ""); err != nil {
		return "", fmt.Errorf("rpmbuild -bb: %w", err)
	}

	rc, err := sess.DownloadFiles(ctx, rpmsArchDir)
	if err != nil {
		return "", fmt.Errorf("download built package: %w", err)
	}
	defer rc.Close()

	if _, err := extractSingleFile(rc, hostOutputDir); err != nil {
		return "", fmt.Errorf("extract built package: %w", err)
	}
	return hostOutputDir + "/" + buildrootName + ".rpm", nil
}

// findEntries runs find at depth 1 under root for the given type (f or
// d) and returns the matched names with their leading "./" stripped.
func findEntries(ctx context.Context, sess *runtime.Session, root, typ string) ([]string, error) {
	result, err := sess.CheckedExec(ctx, "/bin/sh",
		fmt.Sprintf(`find . -mindepth 1 -maxdepth 1 -type %s -name "*"`, typ), nil, root)
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, line := range strings.Fields(result.Stdout) {
		entries = append(entries, strings.TrimPrefix(line, "./"))
	}
	return entries, nil
}

type rpmSpecData struct {
	Name            string
	NameVersion     string
	Version         string
	Release         string
	Arch            string
	Summary         string
	License         string
	Vendor          string
	Icon            string
	Description     string
	SourceTar       string
	Requires        []string
	Conflicts       []string
	Provides        []string
	Obsoletes       []string
	Files           []string
	Dirs            []string
	ConfigNoreplace []string
	Pre             string
	Post            string
	Preun           string
	Postun          string
}

var rpmSpecTemplate = template.Must(template.New("rpm-spec").Parse(`Name: {{.Name}}
Version: {{.Version}}
Release: {{.Release}}
Summary: {{.Summary}}
License: {{.License}}
{{- if .Vendor}}
Vendor: {{.Vendor}}
{{- end}}
{{- if .Icon}}
Icon: {{.Icon}}
{{- end}}
BuildArch: {{.Arch}}
Source0: {{.SourceTar}}
{{- range .Requires}}
Requires: {{.}}
{{- end}}
{{- range .Conflicts}}
Conflicts: {{.}}
{{- end}}
{{- range .Provides}}
Provides: {{.}}
{{- end}}
{{- range .Obsoletes}}
Obsoletes: {{.}}
{{- end}}

%description
{{.Description}}

%files
{{- range .Files}}
/{{.}}
{{- end}}
{{- range .Dirs}}
%dir /{{.}}
{{- end}}
{{- range .ConfigNoreplace}}
%config(noreplace) /{{.}}
{{- end}}
{{- if .Pre}}

%pre
{{.Pre}}
{{- end}}
{{- if .Post}}

%post
{{.Post}}
{{- end}}
{{- if .Preun}}

%preun
{{.Preun}}
{{- end}}
{{- if .Postun}}

%postun
{{.Postun}}
{{- end}}
`))

// renderRpmSpec renders the rpmbuild spec text from recipe metadata and
// the enumerated source files/dirs.
func renderRpmSpec(rec *recipe.Recipe, target recipe.ImageTarget, state imagestate.ImageState, sourceTar string, files, dirs []string) (string, error) {
	deps := rec.ResolveDependencies(target.Image)

	data := rpmSpecData{
		Name:        rec.Name,
		NameVersion: nameVersion(rec),
		Version:     rec.Version,
		Release:     rec.RpmRelease(),
		Arch:        rec.RpmArch(),
		Description: rec.Description,
		License:     rec.License,
		SourceTar:   sourceTar,
		Requires:    deps.Depends,
		Conflicts:   deps.Conflicts,
		Provides:    deps.Provides,
		Obsoletes:   deps.Obsoletes,
		Files:       files,
		Dirs:        dirs,
	}

	if rec.Rpm != nil {
		data.Vendor = rec.Rpm.Vendor
		data.Icon = rec.Rpm.Icon
		data.ConfigNoreplace = rec.Rpm.ConfigNoreplace
		data.Pre = rec.Rpm.Pre
		data.Post = rec.Rpm.Post
		data.Preun = rec.Rpm.Preun
		data.Postun = rec.Rpm.Postun
		data.Obsoletes = append(data.Obsoletes, rec.Rpm.Obsoletes...)
		if rec.Rpm.Summary != "" {
			data.Summary = rec.Rpm.Summary
		}
	}
	if data.Summary == "" {
		data.Summary = rec.Description
	}

	var buf bytes.Buffer
	if err := rpmSpecTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
