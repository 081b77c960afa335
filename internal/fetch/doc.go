// Package fetch retrieves a recipe's declared source into a directory on
// the host, ready to be staged into a build container.
//
// It is deliberately thin: a [Fetcher] interface with two concrete
// implementations, a git fetcher that shells out to the system git
// binary and an HTTP(S)/local-path fetcher built on net/http. Recipe
// parsing and validation happen elsewhere; this package only moves
// bytes.
package fetch
