// Package tui is a terminal presentation layer for BabyBot built on Bubble Tea.
// It drives a local Turn Controller exactly like the web page does: submit,
// clear, and re-render the returned transcript snapshot.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/papercomputeco/babybot/pkg/chat"
	"github.com/papercomputeco/babybot/pkg/transcript"
)

// chrome is the number of lines used by everything but the viewport.
const chrome = 5

// Options configures the terminal chat.
type Options struct {
	Welcome string
	Cleared string

	// GlamourStyle names the glamour standard style used for bot replies
	// ("dark", "light", "notty"). Empty disables markdown rendering.
	GlamourStyle string
}

// replyMsg carries the outcome of a submit back into the update loop.
type replyMsg struct {
	reply chat.Reply
	err   error
}

// Model is the Bubble Tea model for the terminal chat.
type Model struct {
	ctx        context.Context
	controller *chat.Controller
	opts       Options

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	turns       []transcript.Turn
	placeholder string
	notice      string
	failed      bool
	waiting     bool

	width int
	ready bool
}

// New creates the model. ctx bounds every completion call it issues.
func New(ctx context.Context, controller *chat.Controller, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type here... 🍼"
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.PromptStyle = userStyle
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = botStyle

	snapshot := controller.Snapshot()

	return Model{
		ctx:         ctx,
		controller:  controller,
		opts:        opts,
		input:       ti,
		spinner:     sp,
		turns:       snapshot.Transcript,
		placeholder: opts.Welcome,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlL:
			if m.waiting {
				return m, nil
			}
			m.apply(m.controller.Clear(), nil)
			m.placeholder = m.opts.Cleared
			m.refresh()
			return m, nil

		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := m.input.Value()
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			m.waiting = true
			m.notice = ""
			return m, m.submit(text)
		}

	case replyMsg:
		m.waiting = false
		m.apply(msg.reply, msg.err)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Hey Mom! Ask me anything about your Little Munchkin 🧸"))
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.content())
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter ask • ctrl+l clear • esc quit"))

	return b.String()
}

func (m Model) submit(text string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		reply, err := controller.Submit(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *Model) apply(reply chat.Reply, err error) {
	m.turns = reply.Transcript
	m.failed = err != nil

	switch reply.Status {
	case chat.StatusRejected, chat.StatusFailed:
		m.notice = reply.Message
	default:
		m.notice = ""
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	vpHeight := height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	if m.opts.GlamourStyle != "" {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.opts.GlamourStyle),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			m.renderer = r
		}
	}

	m.input.Width = width - len(m.input.Prompt) - 1
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

// content renders the transcript, or the greeting when it is empty.
func (m Model) content() string {
	if len(m.turns) == 0 {
		return noticeStyle.Render(m.placeholder)
	}

	blocks := make([]string, len(m.turns))
	for i, t := range m.turns {
		blocks[i] = userStyle.Render("User: ") + t.UserText + "\n" +
			botStyle.Render("Bot: ") + m.renderBot(t.BotText)
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderBot(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

func (m Model) statusLine() string {
	var line string
	style := noticeStyle

	switch {
	case m.waiting:
		line = m.spinner.View() + " BabyBot is thinking..."
	case m.notice != "":
		line = m.notice
		if m.failed {
			style = errorStyle
		}
	}

	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return style.Render(line)
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(ctx context.Context, controller *chat.Controller, opts Options) error {
	p := tea.NewProgram(New(ctx, controller, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
