// Package config handles loading and validation of t configuration.
//
// Configuration is read from ~/.config/t/config.toml (or the file named by
// T_CONFIG) with environment variable overrides for directory settings.
//
// # Configuration Sources (highest priority first)
//
//   - --tempdirs flag (applied by the CLI)
//   - TEMPDIRS env var: directory holding links to tempdirs
//   - T_TEMP_ROOT env var: directory holding the real tempdirs
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - temp_root: where tempdirs are created (default: $TMPDIR/t)
//   - tempdirs: where tempdirs are linked and persisted (default: ~/tempdirs)
//   - download_dir: source directory for "t dl" (default: ~/Downloads)
//   - shell: shell started by "t shell" (default: $SHELL)
//   - prune_after: age after which "t prune" removes tempdirs (default: 7d)
//   - history_path: visit history (default: ~/.t/history.json)
//   - theme: "default" or "none"
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.git]
//	command = "git init -q {path}"
//	description = "Initialise a git repo"
//	on = ["create"]
//
// Hooks with "on" run automatically for matching events (create, persist,
// delete, all). Hooks without "on" only run via --hook=NAME.
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
