package config

import (
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidHookEvents = []string{"create", "persist", "delete", "all"}
	ValidThemes     = []string{"default", "none"}
)

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// validateHooks checks every hook has a command and only known events.
func validateHooks(hooks map[string]Hook) error {
	for name, hook := range hooks {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("hooks.%s: command is required", name)
		}
		for _, on := range hook.On {
			if err := validateEnum(on, "hooks."+name+".on", ValidHookEvents); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
