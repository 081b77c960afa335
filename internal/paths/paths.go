package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory naming under XDG base paths.
	appName = "pkgforge"

	// Default permission mode for directories.
	DefaultDirMode = 0o755

	// Default permission mode for files.
	DefaultFileMode = 0o644
)

// DefaultOutputDir returns the default directory packages are written
// to when the CLI's --output flag is not given.
//
//	Linux:   ~/.local/share/pkgforge/output
//	macOS:   ~/Library/Application Support/pkgforge/output
func DefaultOutputDir() string {
	return filepath.Join(xdg.DataHome, appName, "output")
}

// ScratchDir returns the directory used to stage fetched sources before
// they are uploaded into a build container.
//
//	Linux:   ~/.cache/pkgforge/scratch
//	macOS:   ~/Library/Caches/pkgforge/scratch
func ScratchDir() string {
	return filepath.Join(xdg.CacheHome, appName, "scratch")
}
