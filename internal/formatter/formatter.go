// package formatter renders location sequences to exportable formats
// (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/heilocal/heilocal/internal/models"
)

// Stars renders a five-star rating row, whole stars only.
func Stars(rating float64) string {
	filled := int(rating)
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// ExportToCSV converts a location sequence to CSV with columns:
// ID, Name, Category, PriceRange, Rating, Reviews, Likes, Comments, Lat, Lng, Media
func ExportToCSV(locs []models.Location) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Category", "PriceRange", "Rating", "Reviews", "Likes", "Comments", "Lat", "Lng", "Media"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, loc := range locs {
		kind, _ := loc.Media()
		record := []string{
			loc.ID,
			loc.Name,
			loc.Category,
			loc.PriceRange,
			strconv.FormatFloat(loc.Rating, 'f', 1, 64),
			strconv.Itoa(loc.ReviewCount),
			strconv.Itoa(loc.Likes),
			strconv.Itoa(loc.Comments),
			strconv.FormatFloat(loc.Lat, 'f', -1, 64),
			strconv.FormatFloat(loc.Lng, 'f', -1, 64),
			kind.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a location sequence to a Markdown listing.
func ExportToMarkdown(title string, locs []models.Location) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Locations**: %d\n\n", len(locs)))

	for i, loc := range locs {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, loc.Name, loc.Category))
		buf.WriteString(fmt.Sprintf("   %s %s · %d reviews · %s\n", Stars(loc.Rating), loc.PriceRange, loc.ReviewCount, loc.OpeningTime))
		buf.WriteString(fmt.Sprintf("   ♥ %d · 💬 %d · (%g, %g)\n", loc.Likes, loc.Comments, loc.Lat, loc.Lng))
		if loc.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", loc.Description))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a location sequence to plain text.
func ExportToText(title string, locs []models.Location) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Feed: %s\n", title))
	buf.WriteString(fmt.Sprintf("Locations: %d\n\n", len(locs)))

	for i, loc := range locs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s %s (%.1f/5, %d reviews)\n", i+1, loc.Name, loc.Category, loc.PriceRange, loc.Rating, loc.ReviewCount))
	}

	return buf.Bytes(), nil
}
