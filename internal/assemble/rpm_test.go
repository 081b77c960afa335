package assemble

import (
	"strings"
	"testing"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/recipe"
)

func TestRenderRpmSpec(t *testing.T) {
	rec := &recipe.Recipe{
		Name:        "hello",
		Version:     "1.0.0",
		Description: "a friendly greeter",
		License:     "MIT",
		Rpm: &recipe.RpmMetadata{
			Release:         "2",
			Vendor:          "Acme",
			Summary:         "hello tool",
			ConfigNoreplace: []string{"etc/hello.conf"},
			Post:            "ldconfig",
		},
		Depends: &recipe.Dependencies{Default: []string{"glibc"}},
	}
	target := recipe.ImageTarget{Image: "fedora", Target: recipe.TargetRPM}

	spec, err := renderRpmSpec(rec, target, imagestate.ImageState{}, "hello-1.0.0.tar.gz",
		[]string{"usr/bin/hello"}, []string{"usr/share/hello"})
	if err != nil {
		t.Fatalf("renderRpmSpec() error = %v", err)
	}

	for _, want := range []string{
		"Name: hello",
		"Version: 1.0.0",
		"Release: 2",
		"Summary: hello tool",
		"License: MIT",
		"Vendor: Acme",
		"BuildArch: noarch",
		"Source0: hello-1.0.0.tar.gz",
		"Requires: glibc",
		"/usr/bin/hello",
		"%dir /usr/share/hello",
		"%config(noreplace) /etc/hello.conf",
		"%post\nldconfig",
	} {
		if !strings.Contains(spec, want) {
			t.Errorf("renderRpmSpec() missing %q, got:\n%s", want, spec)
		}
	}
}

func TestRenderRpmSpecDefaultsSummaryToDescription(t *testing.T) {
	rec := &recipe.Recipe{Name: "mini", Version: "0.1.0", Description: "minimal tool"}
	target := recipe.ImageTarget{Image: "fedora", Target: recipe.TargetRPM}

	spec, err := renderRpmSpec(rec, target, imagestate.ImageState{}, "mini-0.1.0.tar.gz", nil, nil)
	if err != nil {
		t.Fatalf("renderRpmSpec() error = %v", err)
	}
	if !strings.Contains(spec, "Summary: minimal tool") {
		t.Errorf("renderRpmSpec() did not default summary to description, got:\n%s", spec)
	}
	if !strings.Contains(spec, "Release: 0") {
		t.Errorf("renderRpmSpec() did not default release, got:\n%s", spec)
	}
}
