package main

import (
	"context"
	"errors"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/cdh/internal/log"
	"github.com/raphi011/cdh/internal/navigate"
	"github.com/raphi011/cdh/internal/ui/picker"
)

// Replaced in tests.
var (
	choose      navigate.Chooser = picker.Run
	stderrIsTTY                  = func() bool { return isTerminal(os.Stderr) }

	writeClipboard = func(text string) error {
		if clipboard.Unsupported {
			return errors.New("clipboard not supported on this system")
		}
		return clipboard.WriteAll(text)
	}
)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runInteractive(ctx context.Context, nav *navigate.Navigator) (navigate.Result, error) {
	if !stderrIsTTY() {
		return navigate.Result{}, errors.New("interactive mode requires a terminal on stderr")
	}
	return nav.Choose(ctx, choose)
}

// copyPath copies path to the clipboard. Failure only warns: the directive
// has already been printed.
func copyPath(ctx context.Context, path string) {
	l := log.FromContext(ctx)
	if err := writeClipboard(path); err != nil {
		l.Warnf("copy to clipboard: %v", err)
		return
	}
	l.Debug("copied to clipboard", "path", path)
}
