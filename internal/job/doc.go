// Package job runs the single-(recipe,target) build pipeline: ensure a
// build image, start a container session from it, stage the recipe's
// source into the container, run its script phases, assemble the final
// package, and persist the resulting image state.
//
// Run owns exactly one container session for the lifetime of the call;
// the session is always torn down, including on failure, via a deferred
// close.
package job
