package backend

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/ardnew/ilc/il"
)

func TestErrors_Is(t *testing.T) {
	pos := il.Pos{File: "main.yaml", Line: 4, Column: 3}

	tests := []struct {
		err      error
		sentinel error
		text     string
	}{
		{&NamePresentError{Name: "x"}, ErrNamePresent, "name already declared: x"},
		{&NameNotFoundError{Name: "f", Pos: pos}, ErrNameNotFound, "main.yaml:4:3: name not declared: f"},
		{
			&UnsupportedConstructError{Backend: "js", Construct: "Type"},
			ErrUnsupportedConstruct,
			"js: unsupported construct: Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			wrapped := fmt.Errorf("compile: %w", tt.err)

			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}

			if errors.Is(tt.err, ErrMaxDepthExceeded) {
				t.Errorf("%v matches an unrelated sentinel", tt.err)
			}

			if got := tt.err.Error(); got != tt.text {
				t.Errorf("Error() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestErrors_LogValue(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Error("compile failed", slog.Any("error",
		&NameNotFoundError{Name: "console.log", Pos: il.Pos{Line: 2}}))

	out := buf.String()
	for _, want := range []string{"error.name=console.log", "error.pos.line=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
