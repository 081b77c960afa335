package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// Output of a command execution inside a container.
type ExecResult struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Exec runs a command inside the container's shell.
//
// The command is passed to shell as a single argument via "shell -c
// command". A non-zero exit code is not treated as an error; the caller
// decides how to handle it. Use [Session.CheckedExec] when a non-zero
// exit should itself be the failure.
func (s *Session) Exec(ctx context.Context, shell, command string, env []string, workdir string) (*ExecResult, error) {
	return s.execArgs(ctx, []string{shell, "-c", command}, env, workdir)
}

// CheckedExec runs a command the same way as [Session.Exec], but treats
// a non-zero exit code as an error carrying the captured stderr.
func (s *Session) CheckedExec(ctx context.Context, shell, command string, env []string, workdir string) (*ExecResult, error) {
	result, err := s.Exec(ctx, shell, command, env, workdir)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return result, fmt.Errorf("%w: command %q exited %d: %s", ErrRuntime, command, result.ExitCode, result.Stderr)
	}
	return result, nil
}

// execArgs creates an exec instance inside the container, attaches to
// its combined output stream, and waits for it to exit. An expired
// deadline on ctx (e.g. one set by the caller via context.WithTimeout)
// is surfaced as [ErrExecTimeout]; any other cancellation is wrapped in
// [ErrRuntime].
func (s *Session) execArgs(ctx context.Context, args []string, env []string, workdir string) (*ExecResult, error) {
	created, err := s.client.ContainerExecCreate(ctx, s.id, container.ExecOptions{
		Cmd:          args,
		Env:          env,
		WorkingDir:   workdir,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create exec in %s: %v", ErrRuntime, s.id, err)
	}

	attach, err := s.client.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: attach exec in %s: %v", ErrRuntime, s.id, err)
	}
	defer attach.Close()

	var stdout, stderr bytes.Buffer
	reader := newDoneReader(attach.Reader)
	copyDone := make(chan error, 1)
	go func() {
		_, err := stdcopy.StdCopy(&stdout, &stderr, reader)
		copyDone <- err
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ErrExecTimeout{Cmd: fmt.Sprint(args)}
		}
		return nil, fmt.Errorf("%w: exec in %s: %v", ErrRuntime, s.id, ctx.Err())
	case err := <-copyDone:
		if err != nil {
			return nil, fmt.Errorf("%w: read exec output from %s: %v", ErrRuntime, s.id, err)
		}
	}

	inspect, err := s.client.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect exec in %s: %v", ErrRuntime, s.id, err)
	}

	return &ExecResult{
		ExitCode: inspect.ExitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
