package il

import (
	"log/slog"
	"strconv"
	"strings"
)

// Pos identifies a location in the source that produced a node.
// The zero Pos is unknown.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

// String returns "file:line:column", omitting unknown parts.
func (p Pos) String() string {
	if !p.IsValid() {
		if p.File != "" {
			return p.File
		}

		return "-"
	}

	var sb strings.Builder

	if p.File != "" {
		sb.WriteString(p.File)
		sb.WriteByte(':')
	}

	sb.WriteString(strconv.Itoa(p.Line))

	if p.Column > 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(p.Column))
	}

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (p Pos) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)

	if p.File != "" {
		attrs = append(attrs, slog.String("file", p.File))
	}

	if p.IsValid() {
		attrs = append(attrs, slog.Int("line", p.Line))

		if p.Column > 0 {
			attrs = append(attrs, slog.Int("column", p.Column))
		}
	}

	return slog.GroupValue(attrs...)
}
