package imagebuilder

import (
	"fmt"
	"os"
	"path/filepath"
)

// baseDefinition is a resolved base image definition: a Dockerfile
// (user-supplied or synthesized) ready to hand to the container
// runtime's build endpoint.
type baseDefinition struct {
	Dockerfile []byte
	Simple     bool // true iff synthesized rather than user-supplied.
}

// stockImages maps the image family name a recipe declares (spec.md's
// "image name") to the upstream base image tag a synthesized Dockerfile
// starts FROM.
var stockImages = map[string]string{
	"fedora":   "fedora:latest",
	"centos":   "quay.io/centos/centos:stream9",
	"rhel":     "registry.access.redhat.com/ubi9/ubi:latest",
	"debian":   "debian:stable-slim",
	"ubuntu":   "ubuntu:latest",
	"alpine":   "alpine:latest",
	"arch":     "archlinux:latest",
	"opensuse": "opensuse/leap:latest",
}

// resolveBaseImage looks up a Dockerfile at
// <recipeDir>/images/<image>/Dockerfile; when absent, it synthesizes a
// minimal one from [stockImages]. A Dockerfile always wins over
// synthesis (spec tie-break), and yields Simple=false; a synthesized
// definition yields Simple=true.
func resolveBaseImage(recipeDir, image string) (baseDefinition, error) {
	path := filepath.Join(recipeDir, "images", image, "Dockerfile")
	contents, err := os.ReadFile(path)
	if err == nil {
		return baseDefinition{Dockerfile: contents, Simple: false}, nil
	}
	if !os.IsNotExist(err) {
		return baseDefinition{}, fmt.Errorf("read %s: %w", path, err)
	}

	stock, ok := stockImages[image]
	if !ok {
		return baseDefinition{}, fmt.Errorf("no Dockerfile at %s and no stock base image known for %q", path, image)
	}

	synthesized := fmt.Sprintf("FROM %s\n", stock)
	return baseDefinition{Dockerfile: []byte(synthesized), Simple: true}, nil
}

// packageManager identifies the package manager family used to install
// build dependencies, keyed by the distro ID reported in /etc/os-release.
type packageManager struct {
	// InstallCmd renders the shell command installing pkgs, given the
	// distro's own package names.
	InstallCmd func(pkgs []string) string
	// DefaultDeps are installed unless the recipe sets skip_default_deps.
	DefaultDeps []string
}

var packageManagers = map[string]packageManager{
	"fedora": {
		InstallCmd:  dnfInstall,
		DefaultDeps: []string{"rpm-build", "gcc", "make"},
	},
	"rhel": {
		InstallCmd:  dnfInstall,
		DefaultDeps: []string{"rpm-build", "gcc", "make"},
	},
	"centos": {
		InstallCmd:  dnfInstall,
		DefaultDeps: []string{"rpm-build", "gcc", "make"},
	},
	"debian": {
		InstallCmd:  aptInstall,
		DefaultDeps: []string{"build-essential", "dpkg-dev", "fakeroot"},
	},
	"ubuntu": {
		InstallCmd:  aptInstall,
		DefaultDeps: []string{"build-essential", "dpkg-dev", "fakeroot"},
	},
	"alpine": {
		InstallCmd:  apkInstall,
		DefaultDeps: []string{"alpine-sdk"},
	},
	"arch": {
		InstallCmd:  pacmanInstall,
		DefaultDeps: []string{"base-devel"},
	},
	"opensuse": {
		InstallCmd:  zypperInstall,
		DefaultDeps: []string{"rpm-build", "gcc", "make"},
	},
	"opensuse-leap": {
		InstallCmd:  zypperInstall,
		DefaultDeps: []string{"rpm-build", "gcc", "make"},
	},
}

func dnfInstall(pkgs []string) string {
	return "dnf install -y " + joinArgs(pkgs)
}

func aptInstall(pkgs []string) string {
	return "apt-get update && apt-get install -y " + joinArgs(pkgs)
}

func apkInstall(pkgs []string) string {
	return "apk add --no-cache " + joinArgs(pkgs)
}

func pacmanInstall(pkgs []string) string {
	return "pacman -Sy --noconfirm " + joinArgs(pkgs)
}

func zypperInstall(pkgs []string) string {
	return "zypper --non-interactive install " + joinArgs(pkgs)
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}
