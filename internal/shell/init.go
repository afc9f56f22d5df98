package shell

import "fmt"

// Supported lists the shells "t init" can emit a wrapper for.
var Supported = []string{"bash", "zsh", "fish"}

// Script returns the wrapper function for the named shell.
func Script(name string) (string, error) {
	switch name {
	case "bash":
		return bashInit, nil
	case "zsh":
		return zshInit, nil
	case "fish":
		return fishInit, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", name)
	}
}

// posixBody is shared by bash and zsh.
const posixBody = `t() {
    case "$1" in
        init|completion|help)
            command t "$@"
            return
            ;;
    esac
    local arg
    for arg in "$@"; do
        case "$arg" in
            -h|--help|--version)
                command t "$@"
                return
                ;;
        esac
    done

    local out dir
    out="$(command t "$@")" || return
    dir="$(printf '%s\n' "$out" | tail -n 1)"
    if [ -n "$dir" ] && [ -d "$dir" ]; then
        cd "$dir"
    elif [ -n "$out" ]; then
        printf '%s\n' "$out"
    fi
}
`

const bashInit = `# t shell wrapper
# Install: eval "$(t init bash)"

` + posixBody

const zshInit = `# t shell wrapper
# Install: eval "$(t init zsh)"

` + posixBody

const fishInit = `# t shell wrapper
# Install: t init fish | source
# Or add to config.fish: t init fish | source

function t --wraps=t --description 'Temporary directories'
    switch "$argv[1]"
        case init completion help
            command t $argv
            return
    end
    for arg in $argv
        switch $arg
            case -h --help --version
                command t $argv
                return
        end
    end

    set -l out (command t $argv)
    or return
    set -l dir
    if test (count $out) -gt 0
        set dir $out[-1]
    end
    if test -n "$dir"; and test -d "$dir"
        cd $dir
    else if test (count $out) -gt 0
        printf '%s\n' $out
    end
end
`
