// Package shell integrates t with interactive shells.
//
// A process cannot change its parent shell's working directory, so t prints
// the directory as the last line of stdout and a wrapper function installed
// with "t init <shell>" changes into it:
//
//	eval "$(t init bash)"           # add to ~/.bashrc
//	eval "$(t init zsh)"            # add to ~/.zshrc
//	t init fish | source            # add to ~/.config/fish/config.fish
//
// The wrapper passes init, completion, help and version invocations straight
// through. For everything else it captures stdout and cds into the last
// line when the command succeeded and that line is a directory.
//
// [Spawn] runs a sub-shell inside a tempdir for "t shell". Its stdout is
// redirected to stderr so the wrapper's command substitution only ever sees
// the path printed after the sub-shell exits.
package shell
