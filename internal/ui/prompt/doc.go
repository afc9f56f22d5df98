// Package prompt provides the small interactive prompts t shows on stderr:
// a confirmation before deleting tempdirs ([Confirm]) and a name editor used
// by rename ([Name]).
//
// Both return ui.ErrNotInteractive when stdin or stderr is not a terminal,
// so callers can fall back to flags.
package prompt
