package locations

import (
	"os"
	"strconv"

	"github.com/heilocal/heilocal/internal/shared"
)

// Helsinki city centre, the fallback position when no device location
// is available.
const (
	FallbackLat = 60.1699
	FallbackLng = 24.9384
)

// Locate resolves the viewer's coordinate. HEILOCAL_LAT/HEILOCAL_LNG win,
// then the configured default, then the fixed fallback. Location lookup
// never fails; it only degrades.
func Locate(cfg shared.GeoConfig) (lat, lng float64) {
	if envLat, envLng, ok := envCoordinate(); ok {
		return envLat, envLng
	}

	if cfg.DefaultLat != 0 || cfg.DefaultLng != 0 {
		return cfg.DefaultLat, cfg.DefaultLng
	}

	return FallbackLat, FallbackLng
}

func envCoordinate() (float64, float64, bool) {
	latStr, lngStr := os.Getenv("HEILOCAL_LAT"), os.Getenv("HEILOCAL_LNG")
	if latStr == "" || lngStr == "" {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lng, true
}
