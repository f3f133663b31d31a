package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/cdh/internal/log"
	"github.com/raphi011/cdh/internal/navigate"
	"github.com/raphi011/cdh/internal/output"
	"github.com/raphi011/cdh/internal/ui/static"
)

func runList(ctx context.Context, nav *navigate.Navigator, asJSON bool) error {
	listed, err := nav.List(ctx)
	if err != nil {
		return err
	}

	out := output.FromContext(ctx)
	if asJSON {
		if listed == nil {
			listed = []navigate.Listed{}
		}
		return out.JSON(listed)
	}

	if len(listed) == 0 {
		log.FromContext(ctx).Println("No directories in history")
		return nil
	}

	// Downsample colors to what stdout supports (none when piped)
	w := colorprofile.NewWriter(out.Writer(), os.Environ())
	_, err = io.WriteString(w, static.HistoryTable(listed))
	return err
}
