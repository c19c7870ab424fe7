// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/flowerpassword/internal/i18n"
	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/internal/session"
)

// focus identifies the widget receiving key presses.
type focus int

const (
	focusKeyword focus = iota
	focusCode
	focusHistory
	focusCount
)

// maxHistoryRows bounds the visible part of the history list.
const maxHistoryRows = 8

// opTimeout bounds store calls made from key handlers.
const opTimeout = 5 * time.Second

// sessionChangedMsg is sent when the session reports a background update.
type sessionChangedMsg struct{}

// clearStatusMsg hides the status toast if it is still the one identified by id.
type clearStatusMsg struct{ id int }

type model struct {
	sess   *session.Session
	inputs []textinput.Model // 0: keyword, 1: code
	focus  focus
	cursor int // selected history row

	state session.State

	status    string
	statusErr bool
	statusID  int

	width    int
	quitting bool
}

func newModel(sess *session.Session) model {
	m := model{sess: sess, inputs: make([]textinput.Model, 2)}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 256
		t.Width = 40
		switch i {
		case 0:
			t.Prompt = ""
			t.Placeholder = i18n.T("tui.keyword_placeholder")
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		case 1:
			t.Prompt = ""
			t.Placeholder = i18n.T("tui.code_placeholder")
		}
		m.inputs[i] = t
	}

	m.state = sess.Snapshot()
	m.inputs[0].SetValue(m.state.Keyword)
	m.inputs[1].SetValue(m.state.Code)
	if m.state.Keyword != "" {
		m.focus = focusCode
	}
	m.applyFocus()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.sess.Changes()))
}

// waitForChange blocks until the session signals a background change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sessionChangedMsg:
		m.sync()
		if m.state.Err != nil {
			cmd := m.setStatus(i18n.T("tui.error", m.state.Err), true)
			m.sess.ClearError()
			return m, tea.Batch(cmd, waitForChange(m.sess.Changes()))
		}
		return m, waitForChange(m.sess.Changes())

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % focusCount
		} else {
			m.focus = (m.focus + focusCount - 1) % focusCount
		}
		return m, m.applyFocus()

	case "ctrl+s":
		m.sess.ToggleShowPassword()
		m.sync()
		return m, nil

	case "ctrl+y":
		return m, m.copyPassword()

	case "enter":
		if m.focus == focusHistory {
			return m, m.selectHistory()
		}
		return m, m.copyPassword()
	}

	if m.focus == focusHistory {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.state.History)-1 {
				m.cursor++
			}
		case "ctrl+d", "delete":
			return m, m.deleteHistory()
		}
		return m, nil
	}

	if msg.String() == "up" || msg.String() == "down" {
		if msg.String() == "up" && m.focus > focusKeyword {
			m.focus--
		} else if msg.String() == "down" {
			m.focus++
		}
		return m, m.applyFocus()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused input and pushes edits into the
// session.
func (m model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == focusHistory {
		return m, nil
	}
	idx := int(m.focus)
	before := m.inputs[idx].Value()

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)

	if after := m.inputs[idx].Value(); after != before {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if m.focus == focusKeyword {
			m.sess.SetKeyword(ctx, after)
		} else {
			m.sess.SetCode(ctx, after)
		}
		m.sync()
	}
	return m, cmd
}

func (m *model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if focus(i) == m.focus {
			cmd = m.inputs[i].Focus()
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].TextStyle = m.inputs[i].TextStyle.UnsetForeground()
	}
	return cmd
}

func (m *model) sync() {
	m.state = m.sess.Snapshot()
	if m.cursor >= len(m.state.History) {
		m.cursor = len(m.state.History) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) copyPassword() tea.Cmd {
	if _, err := m.sess.Copy(); err != nil {
		if errors.Is(err, session.ErrNoPassword) {
			return m.setStatus(i18n.T("tui.no_password"), true)
		}
		return m.setStatus(i18n.T("tui.copy_failed", err), true)
	}
	return m.setStatus(i18n.T("tui.copied"), false)
}

func (m *model) selectHistory() tea.Cmd {
	if len(m.state.History) == 0 {
		return nil
	}
	item := m.state.History[m.cursor]
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	m.sess.SelectHistory(ctx, item)
	m.inputs[1].SetValue(item.Code)
	m.inputs[1].CursorEnd()
	m.sync()
	m.focus = focusCode
	return m.applyFocus()
}

func (m *model) deleteHistory() tea.Cmd {
	if len(m.state.History) == 0 {
		return nil
	}
	item := m.state.History[m.cursor]
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := m.sess.DeleteHistory(ctx, item); err != nil {
		m.sess.ClearError()
		return m.setStatus(i18n.T("tui.error", err), true)
	}
	m.sync()
	return m.setStatus(i18n.T("tui.deleted", item.Code), false)
}

// setStatus shows a toast and schedules its removal.
func (m *model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	id := m.statusID
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(i18n.T("tui.title")))
	b.WriteString("\n")

	b.WriteString(m.renderField(focusKeyword, i18n.T("tui.keyword_label")))
	b.WriteString("\n")
	b.WriteString(m.renderField(focusCode, i18n.T("tui.code_label")))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(padLabel(i18n.T("tui.password_label"))))
	if m.state.Password == "" {
		b.WriteString(placeholderStyle.Render(i18n.T("tui.password_empty")))
	} else {
		b.WriteString(passwordStyle.Render(m.sess.DisplayPassword()))
	}
	b.WriteString("\n")

	b.WriteString(sectionTitleStyle.Render(i18n.T("tui.history_title")))
	b.WriteString("\n")
	b.WriteString(m.renderHistory())

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
	}

	b.WriteString("\n\n")
	help := helpStyle.Render(i18n.T("tui.help"))
	if m.width > 0 {
		pending := ""
		if code := m.sess.PendingCode(); code != "" {
			pending = statusMessageStyle.Render("… " + code)
		}
		help = alignFooter(help, pending, m.width-4)
	}
	b.WriteString(help)

	return docStyle.Render(b.String())
}

func (m model) renderField(f focus, label string) string {
	style := labelStyle
	if m.focus == f {
		style = focusedStyle
	}
	return style.Render(padLabel(label)) + m.inputs[int(f)].View()
}

func (m model) renderHistory() string {
	items := m.state.History
	if len(items) == 0 {
		return dimItemStyle.Render("  " + i18n.T("tui.history_empty"))
	}

	start := 0
	if m.cursor >= maxHistoryRows {
		start = m.cursor - maxHistoryRows + 1
	}
	end := start + maxHistoryRows
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		it := items[i]
		line := fmt.Sprintf("%-24s %s", it.Code, dimItemStyle.Render(it.Timestamp.Local().Format("2006-01-02 15:04")))
		if m.focus == focusHistory && i == m.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func padLabel(label string) string {
	const width = 16
	if n := len([]rune(label)); n < width {
		return label + strings.Repeat(" ", width-n)
	}
	return label + " "
}

// Run starts the interactive UI on sess and blocks until the user quits.
// A pending history save is flushed before returning. Log output produced
// meanwhile is printed once the terminal is restored.
func Run(sess *session.Session) error {
	return holdLogs(func() error {
		_, err := tea.NewProgram(newModel(sess), tea.WithAltScreen()).Run()

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if cerr := sess.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
		return err
	})
}

// holdLogs buffers package log output while fn runs and replays it to the
// previous writer afterwards.
func holdLogs(fn func() error) error {
	var held bytes.Buffer
	prev := logging.SetOutput(&held)
	err := fn()
	logging.SetOutput(prev)
	if held.Len() > 0 {
		_, _ = prev.Write(held.Bytes())
	}
	return err
}
