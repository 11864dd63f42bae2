// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     encoder
// Description: Main Bubbletea model for the interactive encoder
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package encoder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	"github.com/msto63/nestedencoder/foundation/nenc"
	"github.com/msto63/nestedencoder/internal/encoder/service"
)

// Backend encodes requests, *service.Service satisfies it
type Backend interface {
	Encode(ctx context.Context, req *service.Request) (*nenc.Response, error)
	Options() nenc.OptionsCatalog
}

// Field indexes
const (
	fieldText = iota
	fieldPattern
	fieldCount
)

// Model is the main Bubbletea model for the encoder TUI
type Model struct {
	// State
	width       int
	height      int
	focus       int
	showCatalog bool
	seq         int

	// Components
	inputs  []textinput.Model
	catalog viewport.Model
	backend Backend
	timeout time.Duration

	// Last outcome
	result string
	err    error
}

// New creates a new encoder model with optional initial values
func New(backend Backend, text, pattern string) Model {
	textInput := textinput.New()
	textInput.Placeholder = "Klartext eingeben"
	textInput.Prompt = ""
	textInput.CharLimit = 0
	textInput.SetValue(text)
	textInput.Focus()

	patternInput := textinput.New()
	patternInput.Placeholder = "z.B. ascii,hex,rot13"
	patternInput.Prompt = ""
	patternInput.CharLimit = 4096
	patternInput.SetValue(pattern)

	return Model{
		inputs:  []textinput.Model{textInput, patternInput},
		catalog: viewport.New(60, 10),
		backend: backend,
		timeout: 2 * time.Second,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.encode())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-8, 10)
		}
		m.catalog.Width = max(msg.Width-4, 20)
		m.catalog.Height = max(msg.Height-16, 5)
		m.catalog.SetContent(m.renderCatalog())
		return m, nil

	case encodedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		m.result = ""
		// an options response means input is incomplete, the hint is shown
		if msg.err == nil && !msg.resp.IsOptions() {
			m.result = msg.resp.Result.Result
		}
		return m, nil
	}

	// cursor blink and other component messages
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "ctrl+o":
		m.showCatalog = !m.showCatalog
		if m.showCatalog {
			m.catalog.SetContent(m.renderCatalog())
		}
		return m, nil

	case "pgup", "pgdown":
		if m.showCatalog {
			var cmd tea.Cmd
			m.catalog, cmd = m.catalog.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}

	m.seq++
	return m, tea.Batch(cmd, m.encode())
}

func (m *Model) setFocus(field int) {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
}

// encode runs the current input through the backend
func (m Model) encode() tea.Cmd {
	seq := m.seq
	req := &service.Request{
		Text:    m.inputs[fieldText].Value(),
		Pattern: m.inputs[fieldPattern].Value(),
	}
	backend := m.backend
	timeout := m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := backend.Encode(ctx, req)
		return encodedMsg{seq: seq, resp: resp, err: err}
	}
}

// Result returns the last successful result
func (m Model) Result() string {
	return m.result
}

// Err returns the last encode error
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(LogoStyle.Render(Logo))
	b.WriteString("  ")
	b.WriteString(SubHeaderStyle.Render("Verschachtelte Kodierung"))
	b.WriteString("\n\n")

	labels := []string{"Klartext", "Muster"}
	for i, in := range m.inputs {
		style := InputStyle
		if i == m.focus {
			style = FocusedInputStyle
		}
		b.WriteString(LabelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(style.Render(in.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderOutcome())
	b.WriteString("\n")

	if m.showCatalog {
		b.WriteString(CatalogPanelStyle.Render(m.catalog.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderOutcome() string {
	if m.err != nil {
		msg := m.err.Error()
		if code := mdwerror.GetCode(m.err); code != mdwerror.CodeUnknown {
			msg = fmt.Sprintf("[%s] %s", code, msg)
		}
		return ErrorPanelStyle.Render(msg)
	}
	if m.result == "" {
		return StagesStyle.Render("Klartext und Muster eingeben, um zu kodieren")
	}
	return ResultPanelStyle.Render(m.result)
}

func (m Model) renderCatalog() string {
	catalog := m.backend.Options()

	keys := make([]string, 0, len(catalog.Encodings))
	width := 0
	for k := range catalog.Encodings {
		keys = append(keys, k)
		width = max(width, lipgloss.Width(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Parameter: " + strings.Join(catalog.Parameters, ", ")))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(CatalogKeyStyle.Render(fmt.Sprintf("%-*s", width, k)))
		b.WriteString("  ")
		b.WriteString(CatalogValueStyle.Render(catalog.Encodings[k]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelpBar() string {
	items := []struct{ key, desc string }{
		{"Tab", "Feld wechseln"},
		{"Ctrl+O", "Kodierungen"},
		{"Esc", "Beenden"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = HelpKeyStyle.Render(it.key) + " " + HelpStyle.Render(it.desc)
	}
	return strings.Join(parts, HelpStyle.Render(" • "))
}

// Run starts the TUI program
func Run(backend Backend, text, pattern string) error {
	p := tea.NewProgram(New(backend, text, pattern), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
