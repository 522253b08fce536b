package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/heilocal/heilocal/internal/tasks"
)

// LocationsExport fetches the catalog and writes each location to a file
// in the chosen format through the concurrent export engine.
func (r *Runner) LocationsExport(ctx context.Context, cmd *cli.Command) error {
	locs, err := r.locations.All(ctx)
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  float64(cmd.Int("rate")),
	}

	r.logger.Info("exporting locations", "count", len(locs), "format", opts.Format, "dir", opts.OutputDir)

	result, err := r.engine.Run(ctx, locs, opts)
	if err != nil {
		return err
	}

	r.writePlainHeader("Export")
	r.writePlain("Exported: %d/%d\n", result.SuccessCount, result.Total)
	r.writePlain("Output:   %s\n", result.OutputDirectory)

	if result.FailedCount > 0 {
		r.writePlain("Failed:   %d\n", result.FailedCount)
		for _, f := range result.Failures {
			r.writePlain("  %s: %v\n", f.ID, f.Err)
		}
	}

	return nil
}
