// Package logging provides the CLI's slog.Handler: a compact,
// single-line format with colorized level labels and a "/"-joined path of
// the groups opened with slog.Logger.WithGroup (e.g.
// ensure-image/session). The build pipeline itself opens no groups; its
// records carry recipe, image and target attributes instead.
//
// Handler implements slog.Handler directly rather than wrapping
// slog.NewTextHandler, so the level label and group path can be
// colorized independently of attribute formatting.
package logging
