// package locations provides read/write access to the restaurant data
// behind the feed and the map.
package locations

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/heilocal/heilocal/internal/api"
	"github.com/heilocal/heilocal/internal/models"
	"github.com/heilocal/heilocal/internal/shared"
)

// DefaultRadius is the nearby-search radius in meters when none is given.
const DefaultRadius = 5000

// Service wraps the /locations endpoints and keeps the last fetched
// sequence cached in memory. The cache preserves backend order, which
// defines the feed/map index correspondence.
type Service struct {
	client *api.Client
	logger *log.Logger

	mu    sync.RWMutex
	cache []models.Location
}

// NewService creates a location service on top of the API client.
func NewService(client *api.Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{client: client, logger: logger}
}

// All fetches the full ordered location sequence and replaces the cache.
func (s *Service) All(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := s.client.Get(ctx, "/locations", &locs); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	s.mu.Lock()
	s.cache = locs
	s.mu.Unlock()

	return s.Cached(), nil
}

// Cached returns a copy of the last fetched sequence, in backend order.
func (s *Service) Cached() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Location, len(s.cache))
	copy(out, s.cache)
	return out
}

// Get fetches a single location by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Location, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: location id", shared.ErrMissingArgument)
	}

	var loc models.Location
	if err := s.client.Get(ctx, "/locations/"+url.PathEscape(id), &loc); err != nil {
		return nil, fmt.Errorf("failed to fetch location %s: %w", id, err)
	}
	return &loc, nil
}

// Nearby fetches locations around the given coordinate. A non-positive
// radius falls back to [DefaultRadius].
func (s *Service) Nearby(ctx context.Context, lat, lng float64, radius int) ([]models.Location, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}

	path := fmt.Sprintf("/locations/nearby?lat=%g&lng=%g&radius=%d", lat, lng, radius)

	var locs []models.Location
	if err := s.client.Get(ctx, path, &locs); err != nil {
		return nil, fmt.Errorf("failed to fetch nearby locations: %w", err)
	}
	return locs, nil
}

// Like records a like for the location. The cached copy's counter is
// bumped only after the backend confirms, so a failed call leaves the
// cache untouched and there is no rollback path.
func (s *Service) Like(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, "/locations/"+url.PathEscape(id)+"/like", nil, nil); err != nil {
		return fmt.Errorf("failed to like location %s: %w", id, err)
	}

	s.bump(id, func(loc *models.Location) { loc.Likes++ })
	return nil
}

// commentRequest mirrors POST /locations/{id}/comments.
type commentRequest struct {
	Comment string `json:"comment"`
}

// AddComment posts a comment on the location and bumps the cached
// comment counter on success.
func (s *Service) AddComment(ctx context.Context, id, comment string) error {
	if comment == "" {
		return fmt.Errorf("%w: comment text", shared.ErrMissingArgument)
	}

	if err := s.client.Post(ctx, "/locations/"+url.PathEscape(id)+"/comments", commentRequest{Comment: comment}, nil); err != nil {
		return fmt.Errorf("failed to comment on location %s: %w", id, err)
	}

	s.bump(id, func(loc *models.Location) { loc.Comments++ })
	return nil
}

func (s *Service) bump(id string, update func(*models.Location)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cache {
		if s.cache[i].ID == id {
			update(&s.cache[i])
			return
		}
	}
}
