// Package runtime manages containers backed by the Docker Engine API.
//
// A [Runtime] connects to a Docker daemon over its HTTP/socket API and
// provides image build, image pull, and container lifecycle operations.
// Each [Session] wraps one running container: commands can be executed
// inside it, files can be copied in and out as tar streams, and the
// container can be stopped and removed once a build finishes with it.
//
// Example usage:
//
//	rt, err := runtime.New("unix:///var/run/docker.sock")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	sess, err := rt.StartContainer(ctx, "debian:stable-slim", "build-1")
//	if err != nil {
//	    return err
//	}
//	defer sess.Close(ctx)
//
//	result, err := sess.Exec(ctx, "/bin/sh", "echo hello", nil, "")
//	if err != nil {
//	    return err
//	}
package runtime
