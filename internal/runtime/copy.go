package runtime

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
)

// CreateDirs creates a directory inside the container, including
// parents.
func (s *Session) CreateDirs(ctx context.Context, path string) error {
	_, err := s.CheckedExec(ctx, "/bin/sh", "mkdir -p "+shellQuote(path), nil, "")
	return err
}

// CopyFileInto extracts a tar stream into the container's filesystem at
// destDir, using the Docker Engine API's native copy endpoint rather
// than shelling out to tar inside the container.
func (s *Session) CopyFileInto(ctx context.Context, r io.Reader, destDir string) error {
	if err := s.client.CopyToContainer(ctx, s.id, destDir, r, container.CopyToContainerOptions{}); err != nil {
		return fmt.Errorf("%w: copy into %s at %s: %v", ErrRuntime, s.id, destDir, err)
	}
	return nil
}

// DownloadFiles returns the contents of path inside the container as a
// tar stream. The caller is responsible for closing the returned reader.
func (s *Session) DownloadFiles(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, _, err := s.client.CopyFromContainer(ctx, s.id, path)
	if err != nil {
		return nil, fmt.Errorf("%w: copy from %s at %s: %v", ErrRuntime, s.id, path, err)
	}
	return rc, nil
}

// shellQuote wraps path in single quotes for safe use in a shell -c
// argument, escaping any embedded single quotes.
func shellQuote(path string) string {
	out := make([]byte, 0, len(path)+2)
	out = append(out, '\'')
	for i := 0; i < len(path); i++ {
		if path[i] == '\'' {
			out = append(out, '\'', '\\', '\'', '\'')
			continue
		}
		out = append(out, path[i])
	}
	out = append(out, '\'')
	return string(out)
}
