package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/log"
)

// editDoneMsg is sent when the external editor exits.
type editDoneMsg struct {
	err  error
	text string
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	contStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

const defaultWidth = 80

// model is the Bubble Tea model for the full-screen session.
type model struct {
	ctxFunc      func() context.Context
	session      *Session
	history      *History
	logger       log.Logger
	input        textinput.Model
	matches      fuzzy.Matches
	preTabText   string
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabCursor int
	historyIdx   int
	width        int
	tabActive    bool
	quitting     bool
}

func runTUI(ctx context.Context, s *Session, h *History, c config) error {
	fmt.Fprint(c.out, banner())

	p := tea.NewProgram(
		newModel(ctx, s, h, c.logger),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)

	_, err := p.Run()

	return err
}

func newModel(ctx context.Context, s *Session, h *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    s,
		history:    h,
		logger:     logger,
		input:      ti,
		historyIdx: h.Len(),
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
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		if errors.Is(msg.err, ErrEditCancelled) {
			return m, tea.Println(hintStyle.Render("edit cancelled"))
		}

		if msg.err != nil {
			return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
		}

		res, err := m.session.Replace(m.ctxFunc(), msg.text)
		m.setPrompt()

		return m, printOutcome(res, err)
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
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "" && m.session.Pending():
		b.WriteString(hintStyle.Render("Close every '{' to evaluate"))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type Pillar source, or help for commands"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

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
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the tab selection by step, starting a cycle if none is active.
// A single candidate is accepted immediately.
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

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes the word being completed and moves the cursor past
// it.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = m.session.Complete(
		m.input.Value(), m.input.Position())

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	if idx < 0 {
		return m
	}

	m.historyIdx = idx

	line, err := m.history.Entry(idx)
	if err != nil {
		m.historyIdx = m.history.Len()
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.tabActive = false
	m.refreshMatches()

	return m
}

// setPrompt shows whether the session is waiting for more input.
func (m *model) setPrompt() {
	if m.session.Pending() {
		m.input.Prompt = contStyle.Render(contPrompt)
	} else {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	line := m.input.Value()

	prompt := evalPrompt
	if m.session.Pending() {
		prompt = contPrompt
	}

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	m.input.SetValue("")
	m.matches = nil
	m.tabActive = false

	if _, err := m.history.Write(line); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	cmd, ok := m.session.command(line)
	if !ok {
		res, err := m.session.Feed(m.ctxFunc(), line)
		m.setPrompt()

		return m, tea.Sequence(echo, printOutcome(res, err))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", cmd))

	switch cmd {
	case "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "clear":
		if err := m.session.Reset(); err != nil {
			return m, tea.Sequence(echo, printOutcome(nil, err))
		}

		m.setPrompt()

		return m, tea.Sequence(tea.ClearScreen,
			tea.Println(hintStyle.Render("session cleared")))

	case "edit":
		c := &editCommand{ctx: m.ctxFunc(), text: m.session.Source()}

		return m, tea.Sequence(echo, tea.Exec(c, func(err error) tea.Msg {
			return editDoneMsg{text: c.result, err: err}
		}))

	default:
		return m, tea.Sequence(echo, tea.Println(helpMessage()))
	}
}

// printOutcome prints the problems and script lines of an evaluation above
// the input line.
func printOutcome(res *lang.Result, err error) tea.Cmd {
	lines, problems := outcome(res, err)

	var out []string

	for _, p := range problems {
		out = append(out, errorStyle.Render(p))
	}

	for _, l := range lines {
		out = append(out, resultStyle.Render(l))
	}

	if len(out) == 0 {
		return nil
	}

	return tea.Println(strings.Join(out, "\n"))
}
