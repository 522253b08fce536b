package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/heilocal/heilocal/internal/formatter"
	"github.com/heilocal/heilocal/internal/models"
)

// locationItem adapts a [models.Location] to the bubbles list widget.
type locationItem struct {
	location models.Location
	playing  bool
}

func (i locationItem) Title() string {
	if i.playing {
		return "▶ " + i.location.Name
	}

	return i.location.Name
}

func (i locationItem) Description() string {
	parts := []string{}

	if i.location.Category != "" {
		parts = append(parts, i.location.Category)
	}

	if i.location.PriceRange != "" {
		parts = append(parts, i.location.PriceRange)
	}

	parts = append(parts, fmt.Sprintf("%s (%d)", formatter.Stars(i.location.Rating), i.location.ReviewCount))

	return strings.Join(parts, " · ")
}

func (i locationItem) FilterValue() string {
	return i.location.Name
}

func newItems(locations []models.Location, playingID string) []list.Item {
	items := make([]list.Item, 0, len(locations))

	for _, l := range locations {
		items = append(items, locationItem{location: l, playing: l.ID == playingID})
	}

	return items
}
