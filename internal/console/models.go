package console

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aaronzipp/werewolf/internal/players"
)

const maxInputLen = 500

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))
)

// menuModel picks one option with the arrow keys or its number
type menuModel struct {
	title       string
	options     []players.Option
	cursor      int
	chosen      bool
	cancelled   bool
	interrupted bool
}

func newMenuModel(title string, options []players.Option) menuModel {
	return menuModel{title: title, options: options}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	case "esc":
		m.cancelled = true
		return m, tea.Quit
	case "ctrl+c":
		m.interrupted = true
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.options) {
			m.cursor = n - 1
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		line := strconv.Itoa(i+1) + ". " + opt.Label
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(normalStyle.Render("  "+line) + "\n")
		}
	}
	if !m.chosen && !m.cancelled && !m.interrupted {
		b.WriteString(helpStyle.Render("up/down to move, enter or a number to choose") + "\n")
	}
	return b.String()
}

// value returns the picked option's value
func (m menuModel) value() (int, bool) {
	if !m.chosen || len(m.options) == 0 {
		return 0, false
	}
	return m.options[m.cursor].Value, true
}

// textModel reads one line of text
type textModel struct {
	title       string
	input       string
	done        bool
	cancelled   bool
	interrupted bool
}

func newTextModel(title string) textModel {
	return textModel{title: title}
}

func (m textModel) Init() tea.Cmd { return nil }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyCtrlC:
		m.interrupted = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if m.input != "" {
			_, size := utf8.DecodeLastRuneInString(m.input)
			m.input = m.input[:len(m.input)-size]
		}
	case tea.KeySpace:
		m.input = appendCapped(m.input, " ")
	case tea.KeyRunes:
		m.input = appendCapped(m.input, string(key.Runes))
	}
	return m, nil
}

func appendCapped(s, add string) string {
	if utf8.RuneCountInString(s)+utf8.RuneCountInString(add) > maxInputLen {
		return s
	}
	return s + add
}

func (m textModel) View() string {
	cursor := "_"
	if m.done || m.cancelled || m.interrupted {
		cursor = ""
	}
	return titleStyle.Render(m.title) + "\n" + selectedStyle.Render("> "+m.input+cursor) + "\n"
}
