package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler. Styles are bound to a
// renderer for the output writer, so colors are dropped when the writer does
// not support them.
type palette struct {
	key   lipgloss.Style
	str   lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	when  lipgloss.Style
	null  lipgloss.Style
	trace lipgloss.Style
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		when:  fg("4"),
		null:  fg("8"),
		trace: fg("5"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err

	case l >= slog.LevelWarn:
		return p.warn

	case l >= slog.LevelInfo:
		return p.info

	case l >= slog.LevelDebug:
		return p.debug

	default:
		return p.trace
	}
}

// boundAttr is an attribute added with WithAttrs under the groups open at
// that time.
type boundAttr struct {
	groups []string
	attr   slog.Attr
}

// prettyHandler renders records as styled key=value lines (text format) or
// as an indented object (JSON format).
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	bound  []boundAttr
	groups []string
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		mu:     &sync.Mutex{},
		w:      w,
		style:  newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.bound = slices.Clip(h.bound)

	for _, a := range attrs {
		c.bound = append(c.bound, boundAttr{groups: h.groups, attr: a})
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]boundAttr, 0, 4+len(h.bound)+r.NumAttrs())

	if !r.Time.IsZero() {
		attrs = append(attrs, boundAttr{attr: slog.Time(slog.TimeKey, r.Time)})
	}

	attrs = append(attrs, boundAttr{attr: slog.Any(slog.LevelKey, r.Level)})

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			attrs = append(attrs, boundAttr{
				attr: slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
			})
		}
	}

	attrs = append(attrs, boundAttr{attr: slog.String(slog.MessageKey, r.Message)})
	attrs = append(attrs, h.bound...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, boundAttr{groups: h.groups, attr: a})

		return true
	})

	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		h.writeObject(buf, attrs)
	} else {
		for _, b := range attrs {
			h.writeText(buf, b.groups, b.attr)
		}
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// replace applies the configured ReplaceAttr and reports whether the
// attribute should be written.
func (h *prettyHandler) replace(groups []string, a slog.Attr) (slog.Attr, bool) {
	a.Value = a.Value.Resolve()

	if _, isLevel := a.Value.Any().(slog.Level); isLevel && len(groups) == 0 {
		return a, true
	}

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	return a, !a.Equal(slog.Attr{})
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a, ok := h.replace(groups, a)
	if !ok {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(slices.Clip(groups), a.Key)
		}

		for _, g := range a.Value.Group() {
			h.writeText(buf, inner, g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	key := strings.Join(append(slices.Clip(groups), a.Key), ".")

	buf.WriteString(h.style.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, attrs []boundAttr) {
	buf.WriteString("{")

	first := true

	for _, b := range attrs {
		a, ok := h.replace(b.groups, b.attr)
		if !ok {
			continue
		}

		if len(b.groups) > 0 {
			a.Key = strings.Join(append(slices.Clip(b.groups), a.Key), ".")
		}

		h.writeMember(buf, a, 1, &first)
	}

	buf.WriteString("\n}")
}

func (h *prettyHandler) writeMember(buf *bytes.Buffer, a slog.Attr, depth int, first *bool) {
	if !*first {
		buf.WriteByte(',')
	}

	*first = false

	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
	buf.WriteString(": ")

	if a.Value.Kind() != slog.KindGroup {
		buf.WriteString(h.value(a.Value))

		return
	}

	buf.WriteByte('{')

	inner := true

	for _, g := range a.Value.Group() {
		g, ok := h.replace(nil, g)
		if ok {
			h.writeMember(buf, g, depth+1, &inner)
		}
	}

	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteByte('}')
}

func (h *prettyHandler) value(v slog.Value) string {
	quote := func(s string) string {
		if h.format == FormatJSON {
			return strconv.Quote(s)
		}

		return s
	}

	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(quote(v.String()))

	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.num.Render(quote(v.Duration().String()))

	case slog.KindTime:
		return h.style.when.Render(quote(v.Time().Format(time.RFC3339)))

	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return h.style.null.Render("null")

		case slog.Level:
			return h.style.level(x).Render(quote(strings.ToUpper(Level(x).label())))

		case error:
			return h.style.no.Render(quote(x.Error()))
		}
	}

	return h.style.str.Render(quote(v.String()))
}
