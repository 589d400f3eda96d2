package cmd

import (
	"context"
	"fmt"

	"github.com/taskli/taskli/internal/config"
	"github.com/taskli/taskli/internal/ui"
)

// tuiCommand starts the interactive read-only task browser.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tui: unexpected arguments: %v", args)
	}
	return ui.Run(ctx, openStore(cfg))
}
