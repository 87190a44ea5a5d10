package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if logger.pretty {
		t.Error("expected pretty disabled for a non-terminal writer")
	}
}

func TestLogger_Zero_Discards(t *testing.T) {
	var logger Logger

	logger.Info("nothing")
	logger.With(slog.String("k", "v")).Error("nothing")

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("zero logger reports %v/%v", logger.Level(), logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("msg") }, true},
		{"info at error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("msg") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := strings.Contains(buf.String(), "msg"); got != tt.want {
				t.Errorf("logged = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_Make_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		contains string
		time     bool
	}{
		{"rfc3339 named", "RFC3339", "T", true},
		{"rfc3339 nano named", "RFC3339Nano", ".", true},
		{"none", "none", "", false},
		{"empty", "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithTimeLayout(tt.layout), WithFormat(FormatJSON)).Info("test")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("invalid JSON %q: %v", buf.String(), err)
			}

			ts, ok := rec[slog.TimeKey].(string)
			if ok != tt.time {
				t.Fatalf("time present = %v, want %v: %s", ok, tt.time, buf.String())
			}

			if ok && !strings.Contains(ts, tt.contains) {
				t.Errorf("time %q does not contain %q", ts, tt.contains)
			}
		})
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to be this file, got: %s", buf.String())
	}
}

func TestLogger_Make_WithFormat(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON)).Warn("json message", slog.Int("n", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec[slog.LevelKey] != "WARN" || rec["n"] != float64(3) {
		t.Errorf("unexpected record: %v", rec)
	}

	buf.Reset()
	Make(&buf, WithFormat(FormatText)).Trace("hidden")
	Make(&buf, WithFormat(FormatText), WithLevel(LevelTrace)).Trace("shown")

	if out := buf.String(); !strings.Contains(out, "level=TRACE") ||
		!strings.Contains(out, "msg=shown") || strings.Contains(out, "hidden") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf).With(slog.String("backend", "js"))
	logger.Info("first")
	logger.Info("second")

	for line := range strings.Lines(buf.String()) {
		if !strings.Contains(line, "backend=js") {
			t.Errorf("line lacks attribute: %q", line)
		}
	}
}

func TestLogger_Wrap_KeepsConfiguration(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatJSON))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON || wrapped.Level() != LevelDebug {
		t.Errorf("Wrap() = %v/%v", wrapped.Format(), wrapped.Level())
	}

	if base.Level() != LevelWarn {
		t.Errorf("Wrap modified receiver level: %v", base.Level())
	}

	wrapped.Debug("wrapped")

	if !strings.Contains(buf.String(), "wrapped") {
		t.Errorf("wrapped logger did not write to original output: %q", buf.String())
	}
}

func TestLogger_Context_Variants(t *testing.T) {
	type key struct{}

	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace))
	ctx := context.WithValue(t.Context(), key{}, "v")

	logger.TraceContext(ctx, "a")
	logger.DebugContext(ctx, "b")
	logger.InfoContext(ctx, "c")
	logger.WarnContext(ctx, "d")
	logger.ErrorContext(ctx, "e")
	logger.InfoContext(nil, "f") //nolint:staticcheck

	if n := strings.Count(buf.String(), "\n"); n != 6 {
		t.Errorf("expected 6 records, got %d:\n%s", n, buf.String())
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}))

	for i := range 8 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Info("tick")
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "msg=tick"); n != 8 {
		t.Errorf("expected 8 records, got %d", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestPrettyHandler_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	logger.With(slog.String("backend", "js")).
		WithGroup("stmt").
		Info("lowered", slog.Int("depth", 2), slog.Bool("ok", true))

	want := "level=INFO msg=lowered backend=js stmt.depth=2 stmt.ok=true\n"
	if got := buf.String(); got != want {
		t.Errorf("pretty text =\n%q\nwant\n%q", got, want)
	}
}

func TestPrettyHandler_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Info("lowered", slog.Group("scope", slog.String("name", "f")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("pretty JSON not valid %q: %v", buf.String(), err)
	}

	scope, ok := rec["scope"].(map[string]any)
	if !ok || scope["name"] != "f" || rec[slog.LevelKey] != "INFO" {
		t.Errorf("unexpected record: %v", rec)
	}
}
