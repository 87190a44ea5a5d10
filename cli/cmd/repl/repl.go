package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/log"
)

// editDoneMsg is sent when the editor produced new declarations.
type editDoneMsg struct{ decls []backend.Decl }

// editCancelledMsg is sent when the editor content was cleared.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after an error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails.
type editErrorMsg struct{ err error }

const (
	lowerPrompt   = "js> "
	commandPrompt = "  : "
)

const helpMessage = `
Commands (Esc toggles command mode, or prefix a line with ':'):

  help                         Print this help
  names                        List declared names and their types
  let <name> <type> [= value]  Declare a name, optionally compiling a value
  edit                         Edit declarations in $EDITOR
  clear                        Clear screen
  quit                         Exit

Type an expression to lower it to the target language.
Tab / Shift-Tab cycle completions, Up/Down walk history,
Shift-Up/Shift-Down walk history of the current mode only.
Ctrl-C on an empty line or Ctrl-D exits.`

// inputMode selects how a submitted line is interpreted.
type inputMode int

const (
	modeLower inputMode = iota
	modeCommand
)

var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	commandPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *Session
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
	mode         inputMode
	stash        [2]string // unsubmitted input per mode
}

// Run starts an interactive session lowering input with be against reg.
// History is kept in cacheDir when it is not empty.
func Run(
	ctx context.Context,
	be backend.Backend,
	reg *backend.NameRegistry,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var historyPath string
	if cacheDir != "" {
		historyPath = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "cannot load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("backend", be.Name()),
		slog.Int("names", reg.Len()),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, NewSession(be, reg, logger), history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, s *Session, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(lowerPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(lowerPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.session.Reset(msg.decls)

		return m, tea.Println(resultStyle.Render(
			"declarations updated (" + strconv.Itoa(len(msg.decls)) + " names)"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.hint())
	b.WriteByte('\n')

	return b.String()
}

// hint renders the line below the input.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeLower {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(commands, ", ") + " (Esc to return)")
	}

	if call := detectFunctionCall(input, m.input.Position()); call.inCall && m.mode == modeLower {
		if t, ok := m.session.Lookup(call.name); ok && t.IsFunction() {
			return renderSignatureHint(call.name, t, call.argIndex)
		}
	}

	return renderCandidateBar(m.matches, m.isFunction, m.suggIdx, m.tabActive, m.width)
}

func (m model) isFunction(name string) bool {
	t, ok := m.session.Lookup(name)

	return ok && t.IsFunction()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.walkHistory(-1, false), nil

	case tea.KeyDown:
		return m.walkHistory(1, false), nil

	case tea.KeyShiftUp:
		return m.walkHistory(-1, true), nil

	case tea.KeyShiftDown:
		return m.walkHistory(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchMode(1 - m.mode), nil
	}

	confirm := msg.Type == tea.KeyRunes
	if confirm && m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	if !confirm {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(confirm)

	return m, cmd
}

// cycle moves the tab selection by step, completing the current word.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)

	case step > 0:
		m.tabActive = true
		m.preTabText, m.preTabCursor = m.input.Value(), m.input.Position()
		m.suggIdx = 0

	default:
		m.tabActive = true
		m.preTabText, m.preTabCursor = m.input.Value(), m.input.Position()
		m.suggIdx = len(m.matches) - 1
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes s for the current word and moves the cursor after
// it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes completions. With confirm set, a word that
// already equals its only candidate is accepted.
func (m *model) refreshMatches(confirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !confirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// walkHistory moves through history by step. With sameMode set, entries from
// the other mode are skipped; otherwise the mode follows the entry.
func (m model) walkHistory(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m
	}

	if step > 0 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchMode changes the input mode, keeping each mode's unsubmitted text.
func (m model) switchMode(mode inputMode) model {
	m.stash[m.mode] = m.input.Value()
	m.mode = mode

	if mode == modeLower {
		m.input.Prompt = promptStyle.Render(lowerPrompt)
	} else {
		m.input.Prompt = commandPromptStyle.Render(commandPrompt)
	}

	m.input.SetValue(m.stash[mode])
	m.input.CursorEnd()
	m.refreshMatches(false)

	return m
}

func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.stash = [2]string{}
	m.input.SetValue("")
	m.matches = nil

	mode, line := m.mode, input
	if rest, ok := strings.CutPrefix(input, ":"); ok && mode == modeLower {
		mode, line = modeCommand, strings.TrimSpace(rest)
	}

	if err := m.history.Append(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "cannot save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCommand {
		return m.command(input, line)
	}

	echo := tea.Println(promptStyle.Render(lowerPrompt) + inputStyle.Render(input))

	out, err := m.session.Lower(m.ctxFunc(), line)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) command(input, line string) (model, tea.Cmd) {
	name, args, _ := strings.Cut(line, " ")

	echo := tea.Println(commandPromptStyle.Render(commandPrompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "n", "names":
		return m, tea.Sequence(echo, tea.Println(m.names()))

	case "let":
		out, err := m.session.Declare(m.ctxFunc(), args)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		if out == "" {
			return m, echo
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("unknown command: "+name+" (try 'help')")))
	}
}

func (m model) names() string {
	var b strings.Builder

	for _, d := range m.session.Decls() {
		fmt.Fprintf(&b, "  %s %s\n", d.Name, hintStyle.Render(d.Type.String()))
	}

	if b.Len() == 0 {
		return hintStyle.Render("  (no names declared)")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		decls:   m.session.Decls(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}

		case err != nil:
			return editErrorMsg{err: err}

		case !cmd.edited:
			return editCancelledMsg{}

		default:
			return editDoneMsg{decls: cmd.result}
		}
	})
}
