package prompt

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/styles"
)

// maxListed caps how many affected tempdirs the confirmation shows.
const maxListed = 8

// ConfirmResult holds the answer of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type answer int

const (
	pending answer = iota
	yes
	no
	cancelled
)

type confirmModel struct {
	question string
	affected []string
	answer   answer
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer = yes
	case "n", "N", "enter":
		m.answer = no
	case "ctrl+c", "q", "esc":
		m.answer = cancelled
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m confirmModel) View() tea.View {
	if m.answer != pending {
		return tea.NewView("")
	}

	var b strings.Builder
	sym := styles.CurrentSymbols().Temporary
	for i, name := range m.affected {
		if i == maxListed {
			fmt.Fprintf(&b, "  %s\n", styles.Muted().Render(fmt.Sprintf("... and %d more", len(m.affected)-maxListed)))
			break
		}
		fmt.Fprintf(&b, "  %s %s\n", styles.Muted().Render(sym), name)
	}
	fmt.Fprintf(&b, "%s %s ", styles.Warning().Render(m.question), styles.Muted().Render("[y/N]"))
	return tea.NewView(b.String())
}

func (m confirmModel) result() ConfirmResult {
	return ConfirmResult{Confirmed: m.answer == yes, Cancelled: m.answer == cancelled}
}

// Confirm lists the affected tempdirs, asks question and waits for y or n.
// Enter answers no.
func Confirm(question string, affected []string) (ConfirmResult, error) {
	if !ui.IsInteractive() {
		return ConfirmResult{}, ui.ErrNotInteractive
	}
	p := tea.NewProgram(confirmModel{question: question, affected: affected}, ui.ProgramOptions()...)
	final, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return final.(confirmModel).result(), nil
}
