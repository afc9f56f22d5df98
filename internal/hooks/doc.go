// Package hooks runs user-configured commands after tempdir lifecycle events.
//
// Hooks are defined in the config file and matched by event:
//
//	[hooks.git]
//	command = "git init -q {path}"
//	on = ["create"]
//
// A hook runs via "sh -c" with the tempdir as working directory. Its stdout
// and stderr both go to the logger's writer (stderr) because stdout is
// reserved for the resolved path.
//
// # Placeholders
//
//   - {path}    - absolute path of the tempdir
//   - {name}    - tempdir name
//   - {link}    - link in the tempdirs directory (empty for hidden tempdirs)
//   - {trigger} - event that triggered the hook (create, persist, delete)
//
// Values are shell-quoted before substitution.
package hooks
