package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandleWritesLevelMessageAndAttrs(t *testing.T) {
	var buf strings.Builder
	h := New(&buf, slog.LevelInfo, false)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "running step", 0)
	r.AddAttrs(slog.String("cmd", "make"), slog.Int("exit", 0))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"INFO", "running step", "cmd=make", "exit=0"} {
		if !strings.Contains(got, want) {
			t.Errorf("Handle() output missing %q, got %q", want, got)
		}
	}
}

func TestEnabledRespectsLevel(t *testing.T) {
	h := New(&strings.Builder{}, slog.LevelWarn, false)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(Debug) = true, want false at Warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(Error) = false, want true at Warn level")
	}
}

func TestWithGroupPrefixesOutput(t *testing.T) {
	var buf strings.Builder
	h := New(&buf, slog.LevelInfo, false).WithGroup("ensure-image").WithGroup("session")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "started", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if !strings.Contains(buf.String(), "ensure-image/session") {
		t.Errorf("Handle() output = %q, want group path ensure-image/session", buf.String())
	}
}

func TestWithAttrsPersistsAcrossRecords(t *testing.T) {
	var buf strings.Builder
	h := New(&buf, slog.LevelInfo, false).WithAttrs([]slog.Attr{slog.String("recipe", "hello")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "starting job", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if !strings.Contains(buf.String(), "recipe=hello") {
		t.Errorf("Handle() output = %q, want recipe=hello", buf.String())
	}
}
