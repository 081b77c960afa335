// Package batch fans a recipe's declared images out into concurrent
// build jobs, bounded by a worker limit.
//
// Run is the Go rendering of "concurrent build jobs cooperatively
// scheduled": rather than a single-threaded event loop, each (recipe,
// image) pair runs in its own goroutine under a golang.org/x/sync/errgroup
// group capped at a fixed number of workers. Every job receives the
// caller's context unchanged: one job failing does not cancel its
// siblings, while cancelling the caller's context stops them all.
// In-flight jobs still unwind through their own deferred session close,
// so no container is ever leaked.
package batch
