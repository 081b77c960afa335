package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// SessionState reports the last-observed lifecycle state of a [Session]'s
// container.
type SessionState string

const (
	SessionRunning    SessionState = "running"
	SessionStopped    SessionState = "stopped"
	SessionNotCreated SessionState = "not-created"
)

// A running build container backed by the Docker Engine API.
type Session struct {
	client *client.Client
	id     string
}

// ID returns the container ID this session wraps.
func (s *Session) ID() string {
	return s.id
}

// Status queries the current state of the container.
func (s *Session) Status(ctx context.Context) (SessionState, error) {
	info, err := s.client.ContainerInspect(ctx, s.id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return SessionNotCreated, nil
		}
		return "", fmt.Errorf("%w: inspect container %s: %v", ErrRuntime, s.id, err)
	}

	if info.State != nil && info.State.Running {
		return SessionRunning, nil
	}
	return SessionStopped, nil
}

// Stop stops the container without removing it. Calling Stop on an
// already-stopped container is not an error.
func (s *Session) Stop(ctx context.Context) error {
	if err := s.client.ContainerStop(ctx, s.id, container.StopOptions{}); err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("%w: stop container %s: %v", ErrRuntime, s.id, err)
	}
	return nil
}

// Close stops and force-removes the container, releasing its resources.
// After Close the session handle is invalid. Failures are logged rather
// than returned, matching the original build pipeline's
// cleanup-is-best-effort teardown discipline — the build's own result is
// already determined by the time Close runs.
func (s *Session) Close(ctx context.Context) {
	if err := s.client.ContainerRemove(ctx, s.id, container.RemoveOptions{Force: true}); err != nil && !client.IsErrNotFound(err) {
		slog.Warn("failed to remove container during session close", "id", s.id, "error", err)
	}
}
