// Package picker provides the fuzzy tempdir picker used by "t -i".
//
// The list is filtered with sahilm/fuzzy as the user types into a bubbles
// textinput; matches are ranked best first and matched characters are
// highlighted. When creation is allowed and the filter names no existing
// item, a "Create" entry is offered at the top.
package picker

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/styles"
)

const maxVisible = 10

// Item is one selectable entry.
type Item struct {
	Name   string // matched against the filter
	Detail string // shown dimmed after the name
}

// Result is the outcome of a pick. Exactly one of Index >= 0, Create != ""
// or Cancelled is set.
type Result struct {
	Index     int
	Create    string
	Cancelled bool
}

// itemSource implements fuzzy.Source for items.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Name }
func (s itemSource) Len() int            { return len(s) }

type model struct {
	input       textinput.Model
	items       []Item
	filtered    []fuzzy.Match
	cursor      int
	allowCreate bool

	done   bool
	result Result
}

func newModel(items []Item, allowCreate bool) *model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.SetWidth(40)

	m := &model{
		input:       ti,
		items:       items,
		allowCreate: allowCreate,
		result:      Result{Index: -1},
	}
	m.applyFilter()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) filter() string {
	return strings.TrimSpace(m.input.Value())
}

// showCreate reports whether the create entry is shown: the filter is a
// non-empty name that matches no item exactly.
func (m *model) showCreate() bool {
	f := m.filter()
	if !m.allowCreate || f == "" {
		return false
	}
	for _, it := range m.items {
		if it.Name == f {
			return false
		}
	}
	return true
}

func (m *model) total() int {
	n := len(m.filtered)
	if m.showCreate() {
		n++
	}
	return n
}

func (m *model) applyFilter() {
	f := m.filter()
	if f == "" {
		// no filter: keep the caller's order (most recent first)
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, it := range m.items {
			m.filtered[i] = fuzzy.Match{Str: it.Name, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(f, itemSource(m.items))
	}
	m.cursor = min(m.cursor, max(0, m.total()-1))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel()
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m.cancel()
	case "up", "ctrl+p", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n", "ctrl+j":
		if m.cursor < m.total()-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.submit()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	if m.input.Value() != before {
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

func (m *model) cancel() (tea.Model, tea.Cmd) {
	m.done = true
	m.result = Result{Index: -1, Cancelled: true}
	return m, tea.Quit
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	pos := m.cursor
	if m.showCreate() {
		if pos == 0 {
			m.done = true
			m.result = Result{Index: -1, Create: m.filter()}
			return m, tea.Quit
		}
		pos--
	}
	if pos < 0 || pos >= len(m.filtered) {
		return m, nil
	}
	m.done = true
	m.result = Result{Index: m.filtered[pos].Index}
	return m, tea.Quit
}

func (m *model) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(styles.Title().Render("Select a tempdir") + "\n")
	b.WriteString(m.input.View() + "\n\n")

	showCreate := m.showCreate()
	total := m.total()
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, total)

	if start > 0 {
		b.WriteString(styles.Muted().Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.Accent().Render("> ")
		}
		if showCreate && i == 0 {
			b.WriteString(cursor + styles.Success().Render(fmt.Sprintf("+ Create %q", m.filter())) + "\n")
			continue
		}
		idx := i
		if showCreate {
			idx--
		}
		match := m.filtered[idx]
		item := m.items[match.Index]
		line := highlight(item.Name, match.MatchedIndexes, i == m.cursor)
		if item.Detail != "" {
			line += "  " + styles.Muted().Render(item.Detail)
		}
		b.WriteString(cursor + line + "\n")
	}
	if end < total {
		b.WriteString(styles.Muted().Render("  ↓ more below") + "\n")
	}
	if total == 0 {
		b.WriteString(styles.Muted().Render("  No matching tempdirs") + "\n")
	}

	b.WriteString("\n" + styles.Muted().Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")
	return tea.NewView(b.String())
}

// highlight renders name with matched characters emphasized.
func highlight(name string, matched []int, selected bool) string {
	base := styles.Normal()
	if selected {
		base = styles.Highlight()
	}
	if len(matched) == 0 {
		return base.Render(name)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	hl := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(styles.Current().Accent)

	var b strings.Builder
	for i, r := range name {
		if set[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Pick shows the picker on stderr and returns the user's choice. With
// allowCreate, a filter that names no existing item can be submitted as a
// new name.
func Pick(items []Item, allowCreate bool) (Result, error) {
	if !ui.IsInteractive() {
		return Result{Index: -1}, fmt.Errorf("interactive picker: %w", ui.ErrNotInteractive)
	}
	if len(items) == 0 && !allowCreate {
		return Result{Index: -1, Cancelled: true}, nil
	}

	p := tea.NewProgram(newModel(items, allowCreate), ui.ProgramOptions()...)
	final, err := p.Run()
	if err != nil {
		return Result{Index: -1}, err
	}
	m := final.(*model)
	if !m.done {
		return Result{Index: -1, Cancelled: true}, nil
	}
	return m.result, nil
}
