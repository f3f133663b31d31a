// Package picker implements the interactive history picker behind cdh -i.
//
// The picker lists history entries most recent first and narrows them with
// a fuzzy filter as the user types. It renders to stderr so stdout stays
// free for the cd directive.
package picker

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/cdh/internal/history"
	"github.com/raphi011/cdh/internal/navigate"
	"github.com/raphi011/cdh/internal/ui/styles"
)

const defaultVisible = 10

// entrySource implements fuzzy.Source over entry paths.
type entrySource []history.Entry

func (s entrySource) String(i int) string { return s[i].Path }
func (s entrySource) Len() int            { return len(s) }

// Model is the bubbletea model of the picker.
type Model struct {
	entries   []history.Entry // most recent first
	input     textinput.Model
	matches   []fuzzy.Match
	cursor    int
	visible   int
	chosen    string
	cancelled bool
	done      bool
}

// New creates a picker over entries given oldest first.
func New(entries []history.Entry) *Model {
	reversed := make([]history.Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.SetWidth(40)
	ti.Focus()

	m := &Model{
		entries: reversed,
		input:   ti,
		visible: defaultVisible,
	}
	m.applyFilter()
	return m
}

// Run shows the picker and returns the chosen path. It returns
// navigate.ErrCancelled when the user backs out.
func Run(entries []history.Entry) (string, error) {
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	p := tea.NewProgram(New(entries),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	path, ok := final.(*Model).Chosen()
	if !ok {
		return "", navigate.ErrCancelled
	}
	return path, nil
}

// Chosen returns the selected path. ok is false if the picker was cancelled
// or nothing was selected.
func (m *Model) Chosen() (path string, ok bool) {
	return m.chosen, !m.cancelled && m.chosen != ""
}

// Cursor returns the position of the highlighted row among the matches.
func (m *Model) Cursor() int { return m.cursor }

// Matches returns the paths currently shown, best match first.
func (m *Model) Matches() []string {
	paths := make([]string, len(m.matches))
	for i, match := range m.matches {
		paths[i] = m.entries[match.Index].Path
	}
	return paths
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, input, blank line, help
		m.visible = max(1, min(defaultVisible, msg.Height-4))
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.chosen = m.entries[m.matches[m.cursor].Index].Path
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *Model) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(styles.PrimaryStyle.Bold(true).Render("cdh"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start := 0
	if m.cursor >= m.visible {
		start = m.cursor - m.visible + 1
	}
	end := min(start+m.visible, len(m.matches))

	for i := start; i < end; i++ {
		match := m.matches[i]
		entry := m.entries[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		id := styles.MutedStyle.Render(fmt.Sprintf("%4d ", entry.ID))
		b.WriteString(cursor + id + highlight(entry.Path, match.MatchedIndexes, i == m.cursor) + "\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching directories") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("↑/↓ select • type to filter • enter cd • esc cancel"))
	return tea.NewView(b.String())
}

func (m *Model) applyFilter() {
	filter := m.input.Value()
	if filter == "" {
		m.matches = make([]fuzzy.Match, len(m.entries))
		for i, e := range m.entries {
			m.matches[i] = fuzzy.Match{Str: e.Path, Index: i}
		}
	} else {
		// sorted by score, best first
		m.matches = fuzzy.FindFrom(filter, entrySource(m.entries))
	}

	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

// highlight renders path with the matched byte offsets emphasized.
func highlight(path string, matched []int, selected bool) string {
	base := styles.NormalStyle
	if selected {
		base = styles.AccentStyle
	}
	if len(matched) == 0 {
		return base.Render(path)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range path {
		if set[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
