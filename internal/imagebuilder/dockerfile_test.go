package imagebuilder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveBaseImageDockerfileWins(t *testing.T) {
	dir := t.TempDir()
	imgDir := filepath.Join(dir, "images", "debian")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	contents := "FROM debian:bookworm\nRUN apt-get update\n"
	if err := os.WriteFile(filepath.Join(imgDir, "Dockerfile"), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	def, err := resolveBaseImage(dir, "debian")
	if err != nil {
		t.Fatalf("resolveBaseImage() error = %v", err)
	}
	if def.Simple {
		t.Error("Simple = true, want false when Dockerfile present")
	}
	if string(def.Dockerfile) != contents {
		t.Errorf("Dockerfile = %q, want %q", def.Dockerfile, contents)
	}
}

func TestResolveBaseImageSynthesized(t *testing.T) {
	def, err := resolveBaseImage(t.TempDir(), "fedora")
	if err != nil {
		t.Fatalf("resolveBaseImage() error = %v", err)
	}
	if !def.Simple {
		t.Error("Simple = false, want true for synthesized definition")
	}
	if !strings.Contains(string(def.Dockerfile), "FROM fedora:latest") {
		t.Errorf("Dockerfile = %q, want a FROM fedora:latest line", def.Dockerfile)
	}
}

func TestResolveBaseImageUnknown(t *testing.T) {
	if _, err := resolveBaseImage(t.TempDir(), "plan9"); err == nil {
		t.Fatal("resolveBaseImage() error = nil, want an error for an unknown image family")
	}
}

func TestPackageManagerInstallCommands(t *testing.T) {
	pkgs := []string{"gcc", "make"}

	cases := []struct {
		family string
		want   string
	}{
		{"fedora", "dnf install -y gcc make"},
		{"debian", "apt-get update && apt-get install -y gcc make"},
		{"alpine", "apk add --no-cache gcc make"},
		{"arch", "pacman -Sy --noconfirm gcc make"},
		{"opensuse", "zypper --non-interactive install gcc make"},
	}

	for _, tc := range cases {
		pm, ok := packageManagers[tc.family]
		if !ok {
			t.Fatalf("no package manager registered for %q", tc.family)
		}
		if got := pm.InstallCmd(pkgs); got != tc.want {
			t.Errorf("%s InstallCmd = %q, want %q", tc.family, got, tc.want)
		}
	}
}
