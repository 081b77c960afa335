package runtime

import (
	"errors"
	"fmt"
)

var ErrRuntime = errors.New("runtime error")

// ErrExecTimeout reports that a command exceeded its allotted deadline
// before the exec process exited.
type ErrExecTimeout struct {
	Cmd string
}

func (e *ErrExecTimeout) Error() string {
	return fmt.Sprintf("exec timed out: %s", e.Cmd)
}

func (e *ErrExecTimeout) Unwrap() error {
	return ErrRuntime
}
