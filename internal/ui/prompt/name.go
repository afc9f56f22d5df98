package prompt

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/styles"
)

// NameResult holds the entered name.
type NameResult struct {
	Value     string
	Cancelled bool
}

// nameModel edits a tempdir name. Enter is refused while validate rejects
// the input; the reason is shown below the field.
type nameModel struct {
	input    textinput.Model
	title    string
	validate func(string) error
	err      error
	done     bool
	aborted  bool
}

func newNameModel(title, initial string, validate func(string) error) nameModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 255 // NAME_MAX
	ti.SetWidth(50)
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return nameModel{input: ti, title: title, validate: validate}
}

func (m nameModel) value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m nameModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m nameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if m.err = m.validate(m.value()); m.err != nil {
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m nameModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	s := styles.Title().Render(m.title) + "\n" + m.input.View()
	if m.err != nil {
		s += "\n" + styles.Error().Render(m.err.Error())
	}
	return tea.NewView(s)
}

// Name asks for a tempdir name, starting from initial. validate may be nil.
func Name(title, initial string, validate func(string) error) (NameResult, error) {
	if !ui.IsInteractive() {
		return NameResult{}, ui.ErrNotInteractive
	}
	p := tea.NewProgram(newNameModel(title, initial, validate), ui.ProgramOptions()...)
	final, err := p.Run()
	if err != nil {
		return NameResult{}, err
	}
	m := final.(nameModel)
	return NameResult{Value: m.value(), Cancelled: m.aborted}, nil
}
