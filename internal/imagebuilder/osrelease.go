package imagebuilder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkgforge/pkgforge/internal/imagestate"
	"github.com/pkgforge/pkgforge/internal/runtime"
)

// detectOS reads /etc/os-release from a running session and parses its
// ID and VERSION_ID fields into an [imagestate.Os].
func detectOS(ctx context.Context, sess *runtime.Session) (imagestate.Os, error) {
	result, err := sess.CheckedExec(ctx, "/bin/sh", "cat /etc/os-release", nil, "")
	if err != nil {
		return imagestate.Os{}, err
	}
	return parseOsRelease(result.Stdout)
}

// parseOsRelease parses the key=value content of an /etc/os-release
// file, unquoting values the same way the shell would.
func parseOsRelease(content string) (imagestate.Os, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = unquoteOsReleaseValue(value)
	}

	distro, ok := fields["ID"]
	if !ok || distro == "" {
		return imagestate.Os{}, fmt.Errorf("missing ID field in os-release content")
	}

	return imagestate.Os{
		Distro:  distro,
		Version: fields["VERSION_ID"],
	}, nil
}

func unquoteOsReleaseValue(v string) string {
	if unquoted, err := strconv.Unquote(v); err == nil {
		return unquoted
	}
	return strings.Trim(v, `"'`)
}
