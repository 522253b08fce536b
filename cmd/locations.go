package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/heilocal/heilocal/internal/formatter"
	"github.com/heilocal/heilocal/internal/locations"
	"github.com/heilocal/heilocal/internal/models"
	"github.com/heilocal/heilocal/internal/shared"
)

// LocationsList fetches and prints the full catalog.
func (r *Runner) LocationsList(ctx context.Context, cmd *cli.Command) error {
	locs, err := r.locations.All(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(locs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Locations (%d)", len(locs)))
	for _, l := range locs {
		r.writeLocationRow(l)
	}

	return nil
}

// LocationsShow prints a single location in detail.
func (r *Runner) LocationsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: location id", shared.ErrMissingArgument)
	}

	loc, err := r.locations.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(loc, true)
	}

	r.writePlainHeader(loc.Name)
	r.writePlain("%s · %s · %s (%d reviews)\n", loc.Category, loc.PriceRange, formatter.Stars(loc.Rating), loc.ReviewCount)
	if loc.OpeningTime != "" {
		r.writePlain("Open: %s\n", loc.OpeningTime)
	}
	r.writePlain("Likes: %d · Comments: %d\n", loc.Likes, loc.Comments)
	r.writePlain("Position: %.4f, %.4f\n", loc.Lat, loc.Lng)

	if kind, src := loc.Media(); kind != models.MediaNone {
		r.writePlain("Media: %s (%s)\n", kind, src)
	}

	if loc.Description != "" {
		r.writePlainln("%s", loc.Description)
	}

	return nil
}

// LocationsNearby lists locations around a coordinate. Falls back to the
// configured position when no coordinate flags are given.
func (r *Runner) LocationsNearby(ctx context.Context, cmd *cli.Command) error {
	lat, lng := locations.Locate(r.config.Geo)
	if cmd.IsSet("lat") {
		lat = cmd.Float("lat")
	}
	if cmd.IsSet("lng") {
		lng = cmd.Float("lng")
	}

	radius := locations.DefaultRadius
	if cmd.IsSet("radius") {
		radius = int(cmd.Int("radius"))
	}

	locs, err := r.locations.Nearby(ctx, lat, lng, radius)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(locs, true)
	}

	r.writePlainHeader(fmt.Sprintf("Nearby %.4f, %.4f (%dm)", lat, lng, radius))
	for _, l := range locs {
		r.writeLocationRow(l)
	}

	return nil
}

// LocationsLike records a like for the given location.
func (r *Runner) LocationsLike(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: location id", shared.ErrMissingArgument)
	}

	if r.client.Session().AccessToken() == "" {
		return fmt.Errorf("%w: liking requires a signed-in session", shared.ErrNotAuthenticated)
	}

	if err := r.locations.Like(ctx, id); err != nil {
		return err
	}

	return r.writePlain("♥ Liked %s\n", id)
}

// LocationsComment posts a comment to the given location.
func (r *Runner) LocationsComment(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	text := cmd.StringArg("text")

	if id == "" || text == "" {
		return fmt.Errorf("%w: usage is `locations comment <id> <text>`", shared.ErrMissingArgument)
	}

	if r.client.Session().AccessToken() == "" {
		return fmt.Errorf("%w: commenting requires a signed-in session", shared.ErrNotAuthenticated)
	}

	if err := r.locations.AddComment(ctx, id, text); err != nil {
		return err
	}

	return r.writePlain("✓ Comment posted to %s\n", id)
}

func (r *Runner) writeLocationRow(l models.Location) {
	r.writePlain("%-24s %s %-10s ♥ %-4d 💬 %d\n", l.Name, formatter.Stars(l.Rating), l.Category, l.Likes, l.Comments)
}
