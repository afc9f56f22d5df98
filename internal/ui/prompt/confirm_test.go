package prompt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/t/internal/ui"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		r := rune(key[0])
		return tea.KeyPressMsg{Code: r, Text: string(r)}
	}
}

func TestConfirmModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		want    ConfirmResult
		wantCmd bool
	}{
		{"y", ConfirmResult{Confirmed: true}, true},
		{"Y", ConfirmResult{Confirmed: true}, true},
		{"n", ConfirmResult{}, true},
		{"N", ConfirmResult{}, true},
		{"enter", ConfirmResult{}, true},
		{"ctrl+c", ConfirmResult{Cancelled: true}, true},
		{"esc", ConfirmResult{Cancelled: true}, true},
		{"q", ConfirmResult{Cancelled: true}, true},
		{"x", ConfirmResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{question: "Delete?"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(confirmModel)

			if got := um.result(); got != tt.want {
				t.Errorf("result = %+v, want %+v", got, tt.want)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.wantCmd)
			}
			if !tt.wantCmd && um.answer != pending {
				t.Errorf("unhandled key changed the answer to %v", um.answer)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	t.Parallel()

	affected := make([]string, maxListed+3)
	for i := range affected {
		affected[i] = fmt.Sprintf("unnamed_%d", i+1)
	}
	m := confirmModel{question: "Delete 11 tempdirs?", affected: affected}

	view := m.View().Content
	for _, want := range []string{"unnamed_1", fmt.Sprintf("unnamed_%d", maxListed), "and 3 more", "[y/N]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, fmt.Sprintf("unnamed_%d\n", maxListed+1)) {
		t.Errorf("view lists more than %d tempdirs:\n%s", maxListed, view)
	}

	m.answer = yes
	if got := m.View().Content; got != "" {
		t.Errorf("view after answering = %q, want empty", got)
	}
}

func TestConfirmModel_Init(t *testing.T) {
	t.Parallel()

	if cmd := (confirmModel{}).Init(); cmd != nil {
		t.Error("Init() should return nil cmd")
	}
}

func TestConfirm_NotInteractive(t *testing.T) {
	if ui.IsInteractive() {
		t.Skip("test process is attached to a terminal")
	}
	if _, err := Confirm("Delete?", nil); !errors.Is(err, ui.ErrNotInteractive) {
		t.Errorf("Confirm() error = %v, want ErrNotInteractive", err)
	}
}
