package main

import (
	"context"
	"fmt"

	"github.com/raphi011/cdh/internal/config"
	"github.com/raphi011/cdh/internal/log"
	"github.com/raphi011/cdh/internal/output"
)

var shells = []string{"bash", "zsh", "fish"}

func runInit(ctx context.Context, shell string) error {
	out := output.FromContext(ctx)
	switch shell {
	case "bash":
		out.Print(bashInit)
	case "zsh":
		out.Print(zshInit)
	case "fish":
		out.Print(fishInit)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	return nil
}

func runInitConfig(ctx context.Context, force bool) error {
	path, err := config.Init(force)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.FromContext(ctx).Printf("Wrote %s\n", path)
	return nil
}

// The wrappers pass listing and setup output through wherever the flag
// appears, evaluate a cd directive and print anything else unchanged.

const bashInit = `# cdh shell wrapper
# Install: eval "$(cdh --init bash)"

cdh() {
    local arg
    for arg in "$@"; do
        case "$arg" in
            -l|--list|-h|--help|--version|--init|--init-config|--init=*|--init-config=*)
                command cdh "$@"
                return
                ;;
        esac
    done
    local directive
    directive="$(command cdh "$@")" || return
    case "$directive" in
        "cd -- "*) eval "$directive" ;;
        *)
            if [ -n "$directive" ]; then
                printf '%s\n' "$directive"
            fi
            ;;
    esac
}
`

const zshInit = `# cdh shell wrapper
# Install: eval "$(cdh --init zsh)"

cdh() {
    local arg
    for arg in "$@"; do
        case "$arg" in
            -l|--list|-h|--help|--version|--init|--init-config|--init=*|--init-config=*)
                command cdh "$@"
                return
                ;;
        esac
    done
    local directive
    directive="$(command cdh "$@")" || return
    case "$directive" in
        "cd -- "*) eval "$directive" ;;
        *)
            if [ -n "$directive" ]; then
                printf '%s\n' "$directive"
            fi
            ;;
    esac
}
`

const fishInit = `# cdh shell wrapper
# Install: cdh --init fish | source
# Or add to config.fish: cdh --init fish | source

function cdh --wraps=cdh --description 'Change to a directory from history'
    for arg in $argv
        switch $arg
            case -l --list -h --help --version --init --init-config '--init=*' '--init-config=*'
                command cdh $argv
                return
        end
    end
    set -l directive (command cdh $argv)
    or return
    if string match -q -- 'cd -- *' "$directive"
        eval $directive
    else if test -n "$directive"
        printf '%s\n' $directive
    end
end
`
