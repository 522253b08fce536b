package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/heilocal/heilocal/internal/shared"
	"github.com/heilocal/heilocal/internal/ui"
)

// Feed launches the interactive feed and map view. The feed sits
// behind sign-in, so a session must restore before the TUI starts.
func (r *Runner) Feed(ctx context.Context, cmd *cli.Command) error {
	user := r.auth.Restore(ctx)
	if user == nil {
		return fmt.Errorf("%w: the feed requires a signed-in session", shared.ErrNotAuthenticated)
	}

	// Redirect logs to file to avoid interfering with the rendering
	fileLogger, err := shared.NewFileLogger("./tmp/heilocal-feed.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	fileLogger.Info("session restored", "email", user.Email)

	return ui.Run(ctx, r.locations, fileLogger)
}
