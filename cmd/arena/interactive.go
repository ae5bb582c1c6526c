package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/arena"
	"github.com/wippyai/wasm-arena/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	elemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// valuePreview is how many elements of the selected view are shown.
const valuePreview = 16

type focus int

const (
	focusInput focus = iota
	focusList
)

type generation struct {
	res   arena.Reservation
	descs []arena.Descriptor
}

type interactiveModel struct {
	err      error
	session  *host.Session
	cfg      *host.Config
	title    string
	status   string
	wasm     []byte
	gens     []generation
	input    textinput.Model
	selected int
	focus    focus
}

type openedMsg struct {
	err     error
	session *host.Session
}

type reservedMsg struct {
	err error
	gen generation
}

func newInteractiveModel(wasm []byte, title string, cfg *host.Config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "u32x4,u8x10"
	ti.Prompt = "layout: "
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		wasm:  wasm,
		title: title,
		cfg:   cfg,
		input: ti,
		focus: focusInput,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.open)
}

func (m *interactiveModel) open() tea.Msg {
	s, err := host.OpenWithConfig(context.Background(), m.wasm, m.cfg)
	return openedMsg{session: s, err: err}
}

// reserve runs on the update goroutine: View reads guest memory, and growth
// must not overlap with it.
func (m *interactiveModel) reserve(layout string) reservedMsg {
	slots, err := arena.ParseLayout(layout)
	if err != nil {
		return reservedMsg{err: err}
	}
	a := m.session.Arena()
	descs, err := a.RequestLayout(slots)
	if err != nil {
		a.Reset()
		return reservedMsg{err: err}
	}
	res, err := a.Reserve()
	if err != nil {
		a.Reset()
		return reservedMsg{err: err}
	}
	return reservedMsg{gen: generation{res: res, descs: descs}}
}

func (m *interactiveModel) descriptors() []arena.Descriptor {
	var out []arena.Descriptor
	for _, g := range m.gens {
		out = append(out, g.descs...)
	}
	return out
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.focus == focusList {
				return m, m.quit()
			}

		case "tab":
			if m.focus == focusInput {
				m.focus = focusList
				m.input.Blur()
			} else {
				m.focus = focusInput
				m.input.Focus()
			}
			return m, nil

		case "up", "k":
			if m.focus == focusList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.focus == focusList && m.selected < len(m.descriptors())-1 {
				m.selected++
			}

		case "enter":
			if m.focus == focusInput && m.session != nil {
				layout := strings.TrimSpace(m.input.Value())
				if layout == "" {
					return m, nil
				}
				m.input.SetValue("")
				return m.Update(m.reserve(layout))
			}
		}

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.status = fmt.Sprintf("memory %d bytes", m.session.Region().Size())

	case reservedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}
		m.gens = append(m.gens, msg.gen)
		m.selected = len(m.descriptors()) - len(msg.gen.descs)
		m.status = resultStyle.Render(fmt.Sprintf("generation %d: +%d pages at offset %d, memory %d bytes",
			len(m.gens), msg.gen.res.Pages, msg.gen.res.Offset, m.session.Region().Size()))
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.session != nil {
		_ = m.session.Close(context.Background())
	}
	return tea.Quit
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}
	if m.session == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Arena"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n\n")

	descs := m.descriptors()
	if len(descs) == 0 {
		b.WriteString("No views yet. Enter a layout to reserve a generation.\n")
	}
	for i, d := range descs {
		row := formatDescriptor(i, d)
		if i == m.selected && m.focus == focusList {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.selected < len(descs) {
		d := descs[m.selected]
		b.WriteString("\n")
		b.WriteString(elemStyle.Render(fmt.Sprintf("%s x%d @ %d", d.Elem, d.Count, d.Offset)))
		b.WriteString(" ")
		b.WriteString(m.preview(m.session.Region(), d))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter reserve • tab switch focus • ↑/↓ select • q quit"))
	return b.String()
}

func (m *interactiveModel) preview(r wasmarena.Region, d arena.Descriptor) string {
	s, err := formatValues(r, d, valuePreview)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return s
}

func runInteractive(wasm []byte, title string, cfg *host.Config) error {
	p := tea.NewProgram(newInteractiveModel(wasm, title, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
