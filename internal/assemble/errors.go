package assemble

import "fmt"

// ErrPackageAssemblyFailed reports that an assembler step failed for the
// given package format. The container is still torn down by the caller;
// this error only ends the assembly stage.
type ErrPackageAssemblyFailed struct {
	Format string
	Cause  error
}

func (e *ErrPackageAssemblyFailed) Error() string {
	return fmt.Sprintf("assemble %s package: %v", e.Format, e.Cause)
}

func (e *ErrPackageAssemblyFailed) Unwrap() error {
	return e.Cause
}
