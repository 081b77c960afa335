package runtime

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Manages the Docker Engine API client and provides image and container
// operations.
type Runtime struct {
	client *client.Client
}

// Creates a runtime connected to the Docker daemon at the given host
// (e.g. "unix:///var/run/docker.sock" or a tcp:// address). An empty host
// falls back to the DOCKER_HOST environment variable and client
// defaults. The runtime must be closed when no longer needed.
func New(host string) (*Runtime, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to docker: %v", ErrRuntime, err)
	}
	return &Runtime{client: cli}, nil
}

// Closes the Docker client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// ImageExists reports whether ref is already present in the daemon's
// local image store, along with its raw inspect response.
func (rt *Runtime) ImageExists(ctx context.Context, ref string) (raw []byte, exists bool, err error) {
	_, raw, err = rt.client.ImageInspectWithRaw(ctx, ref)
	if client.IsErrNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: inspect image %s: %v", ErrRuntime, ref, err)
	}
	return raw, true, nil
}

// PullImage pulls ref from its configured registry, draining the
// progress stream without interpreting it.
func (rt *Runtime) PullImage(ctx context.Context, ref string) error {
	rc, err := rt.client.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("%w: pull image %s: %v", ErrRuntime, ref, err)
	}
	defer rc.Close()

	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("%w: read pull progress for %s: %v", ErrRuntime, ref, err)
	}
	return nil
}

// BuildImage builds an image from a Dockerfile, tagging the result with
// tag. The Dockerfile is wrapped in a single-file tar archive, which is
// the minimal build context the Docker Engine API accepts.
func (rt *Runtime) BuildImage(ctx context.Context, dockerfile []byte, tag string) error {
	buildCtx, err := tarSingleFile("Dockerfile", dockerfile)
	if err != nil {
		return fmt.Errorf("%w: build context for %s: %v", ErrRuntime, tag, err)
	}

	resp, err := rt.client.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("%w: build image %s: %v", ErrRuntime, tag, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("%w: read build output for %s: %v", ErrRuntime, tag, err)
	}
	return nil
}

// CommitContainer commits the container's current filesystem state as a
// new image tagged tag.
func (rt *Runtime) CommitContainer(ctx context.Context, containerID, tag string) error {
	_, err := rt.client.ContainerCommit(ctx, containerID, container.CommitOptions{Reference: tag})
	if err != nil {
		return fmt.Errorf("%w: commit container %s as %s: %v", ErrRuntime, containerID, tag, err)
	}
	return nil
}

// StartContainer creates and starts a long-running container from image,
// identified by id. A "sleep infinity" entrypoint keeps it alive so
// subsequent Exec calls have a running process to attach to.
func (rt *Runtime) StartContainer(ctx context.Context, image, id string) (*Session, error) {
	rt.removeStale(ctx, id)

	created, err := rt.client.ContainerCreate(ctx,
		&container.Config{
			Image: image,
			Cmd:   []string{"sleep", "infinity"},
			Tty:   false,
		},
		&container.HostConfig{},
		nil, nil, id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create container %s: %v", ErrRuntime, id, err)
	}

	if err := rt.client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		_ = rt.client.ContainerRemove(ctx, created.ID, container.RemoveOptions{Force: true})
		return nil, fmt.Errorf("%w: start container %s: %v", ErrRuntime, id, err)
	}

	slog.Debug("container started", "id", id, "image", image)

	return &Session{client: rt.client, id: created.ID}, nil
}

// removeStale removes a leftover container with the given name from a
// previous, interrupted run, if one exists. Best-effort: failures here
// are not fatal, ContainerCreate will surface a clearer error.
func (rt *Runtime) removeStale(ctx context.Context, name string) {
	_ = rt.client.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
}

// Session returns a handle for an already-running container, without
// verifying it exists.
func (rt *Runtime) Session(id string) *Session {
	return &Session{client: rt.client, id: id}
}

func tarSingleFile(name string, contents []byte) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(contents)),
	}); err != nil {
		return nil, err
	}
	if _, err := tw.Write(contents); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}
