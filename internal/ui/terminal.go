package ui

import (
	"errors"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by prompts when no terminal is attached.
var ErrNotInteractive = errors.New("not running in an interactive terminal")

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether both stdin and stderr are terminals, which
// is what a prompt rendered on stderr needs.
func IsInteractive() bool {
	return IsTerminal(os.Stdin.Fd()) && IsTerminal(os.Stderr.Fd())
}

// ProgramOptions returns the options every interactive program uses: render
// to stderr with the color profile detected for stderr.
func ProgramOptions() []tea.ProgramOption {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	return []tea.ProgramOption{
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	}
}

// StyledWriter wraps w so that ANSI styling is downsampled to what w
// supports; pipes and files get plain text.
func StyledWriter(w io.Writer) io.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}
