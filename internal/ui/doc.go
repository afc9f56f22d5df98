// Package ui holds terminal helpers shared by the interactive components.
//
// Interactive programs render on stderr, never stdout: stdout carries only
// the resolved path that the shell wrapper cds into. Components live in
// subpackages:
//
//   - styles: the lipgloss palette
//   - static: non-interactive output such as the status table
//   - prompt: confirm and text input prompts
//   - picker: the fuzzy tempdir picker
package ui
