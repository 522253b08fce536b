package ui

import (
	"fmt"
	"strings"

	"github.com/heilocal/heilocal/internal/formatter"
	"github.com/heilocal/heilocal/internal/models"
)

// renderMap draws the marker pane: one marker row per location with the
// active one highlighted, followed by a detail card for the active
// location.
func renderMap(locations []models.Location, active, cursor int, width int) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Map"))
	b.WriteString("\n")

	for i, l := range locations {
		marker := "○"
		line := fmt.Sprintf("%s %s (%.4f, %.4f)", marker, l.Name, l.Lat, l.Lng)

		switch {
		case i == active:
			line = fmt.Sprintf("● %s (%.4f, %.4f)", l.Name, l.Lat, l.Lng)
			line = styles.active.Render(line)
		case i == cursor:
			line = styles.ok.Render("› " + line)
		default:
			line = styles.marker.Render("  " + line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if active >= 0 && active < len(locations) {
		b.WriteString("\n")
		b.WriteString(renderCard(locations[active], width))
	}

	return b.String()
}

func renderCard(l models.Location, width int) string {
	var b strings.Builder

	b.WriteString(styles.ok.Render(l.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · %s · %s (%d reviews)\n", l.Category, l.PriceRange, formatter.Stars(l.Rating), l.ReviewCount))

	if l.OpeningTime != "" {
		b.WriteString(fmt.Sprintf("Open: %s\n", l.OpeningTime))
	}

	kind, _ := l.Media()
	b.WriteString(fmt.Sprintf("♥ %d · 💬 %d · %s\n", l.Likes, l.Comments, kind))

	if l.Description != "" {
		desc := l.Description
		// Truncate on runes so multi-byte characters survive intact.
		if r := []rune(desc); width > 4 && len(r) > width-4 {
			desc = string(r[:width-4]) + "…"
		}

		b.WriteString(styles.help.Render(desc))
		b.WriteString("\n")
	}

	return styles.pane.Width(width).Render(b.String())
}
