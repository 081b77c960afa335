package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler is a slog.Handler rendering one line per record:
//
//	15:04:05 INFO ensure-image/session running step cmd=make phase=build
//
// The level label and group path are colorized when color is enabled;
// attributes are always plain.
type Handler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Leveler
	color     bool
	addSource bool
	groups    []string
	attrs     []slog.Attr
}

// New creates a Handler writing to out at the given minimum level. When
// color is true, level labels and group paths are ANSI-colorized.
func New(out io.Writer, level slog.Leveler, color bool) *Handler {
	return &Handler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		color: color,
	}
}

// WithSource returns a copy of h that adds each record's call site
// (source=file:line) after the message, for verbose diagnostics.
func (h *Handler) WithSource(enabled bool) *Handler {
	next := *h
	next.addSource = enabled
	return &next
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(h.levelLabel(r.Level))
	b.WriteByte(' ')

	if len(h.groups) > 0 {
		path := strings.Join(h.groups, "/")
		if h.color {
			path = color.New(color.FgCyan).Sprint(path)
		}
		b.WriteString(path)
		b.WriteByte(' ')
	}

	b.WriteString(r.Message)

	if h.addSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			fmt.Fprintf(&b, " source=%s:%d", filepath.Base(frame.File), frame.Line)
		}
	}

	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *Handler) levelLabel(level slog.Level) string {
	label := level.String()
	if !h.color {
		return label
	}

	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint(label)
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen).Sprint(label)
	default:
		return color.New(color.Faint).Sprint(label)
	}
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')
	fmt.Fprint(b, a.Value.Any())
}
