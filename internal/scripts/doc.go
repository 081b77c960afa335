// Package scripts runs a recipe's configure/build/install script phases
// inside a container session.
//
// [Execute] runs the three phases in fixed order: configure (optional),
// build (required), install (optional). Each phase defaults to the
// container's build directory as its working directory, except install,
// which defaults to the output directory. Within a phase, each step is
// filtered by its optional image allow-list and build-target filter
// before being executed in the session; a non-zero exit becomes an
// [ErrBuildStepFailed] and aborts the remaining phases instead of
// running on.
package scripts
