// package feed keeps the scrollable video feed and the map marker
// selection agreed on a single active index over the ordered location
// sequence.
//
// Two flows exist: a map selection resolves to a sequence position and
// commands the feed to scroll there, and feed scrolling settles (after a
// quiet period) into a new active index that is broadcast back to the
// map. Only the item at the active index plays its media.
package feed

import (
	"math"
	"sync"
	"time"

	"github.com/heilocal/heilocal/internal/models"
)

// DefaultDebounce is the quiet period after the last scroll event before
// the active index is recomputed.
const DefaultDebounce = 100 * time.Millisecond

// Opts contains configuration options for creating a [Synchronizer].
type Opts struct {
	// Debounce overrides [DefaultDebounce]; tests use a short window.
	Debounce time.Duration
	// OnIndexChange is broadcast whenever the active index settles on a
	// new value.
	OnIndexChange func(index int)
	// OnScrollTo commands the feed to scroll the item at index to the
	// viewport origin.
	OnScrollTo func(index int)
}

// Synchronizer owns the active index. Callbacks are invoked without the
// internal lock held; the debounce timer fires on its own goroutine, so
// handlers must be safe to call from there.
type Synchronizer struct {
	mu       sync.Mutex
	items    []models.Location
	active   int // -1 when the sequence is empty
	debounce time.Duration
	timer    *time.Timer

	onIndexChange func(int)
	onScrollTo    func(int)
}

// NewSynchronizer creates a synchronizer with no items and no active index.
func NewSynchronizer(opts Opts) *Synchronizer {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return &Synchronizer{
		active:        -1,
		debounce:      opts.Debounce,
		onIndexChange: opts.OnIndexChange,
		onScrollTo:    opts.OnScrollTo,
	}
}

// SetItems replaces the ordered sequence. The active index is clamped
// into the new bounds; an empty sequence clears it. A sequence appearing
// for the first time activates index 0.
func (s *Synchronizer) SetItems(items []models.Location) {
	s.mu.Lock()

	s.items = make([]models.Location, len(items))
	copy(s.items, items)

	previous := s.active
	switch {
	case len(s.items) == 0:
		s.active = -1
	case s.active < 0:
		s.active = 0
	case s.active >= len(s.items):
		s.active = len(s.items) - 1
	}
	changed := s.active != previous && s.active >= 0
	index := s.active

	s.mu.Unlock()

	if changed {
		s.emitIndex(index)
	}
}

// Len returns the sequence length.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ActiveIndex returns the active index, or false when the sequence is
// empty.
func (s *Synchronizer) ActiveIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active < 0 {
		return 0, false
	}
	return s.active, true
}

// PlayingID returns the id of the sole playing item: the item at the
// active index. An empty sequence plays nothing.
func (s *Synchronizer) PlayingID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active < 0 || s.active >= len(s.items) {
		return "", false
	}
	return s.items[s.active].ID, true
}

// IsPlaying reports whether the item with the given id is the playing one.
func (s *Synchronizer) IsPlaying(id string) bool {
	playing, ok := s.PlayingID()
	return ok && playing == id
}

// SelectID resolves a location id to its sequence position, makes it the
// active index, and commands the feed to scroll there. An id absent from
// the sequence leaves the active index unchanged and returns false.
func (s *Synchronizer) SelectID(id string) bool {
	s.mu.Lock()

	index := -1
	for i := range s.items {
		if s.items[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return false
	}

	s.active = index
	s.mu.Unlock()

	s.emitIndex(index)
	if s.onScrollTo != nil {
		s.onScrollTo(index)
	}
	return true
}

// Scroll records a scroll event. The active index is recomputed only
// after the quiet window passes with no further events: each call cancels
// the pending computation and reschedules it, so the last event wins.
// The settled index is round(offset/viewportHeight) clamped into bounds.
func (s *Synchronizer) Scroll(offset, viewportHeight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.settle(offset, viewportHeight)
	})
}

// Stop cancels any pending scroll settlement.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) settle(offset, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}

	index := int(math.Round(offset / viewportHeight))

	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.items)-1 {
		index = len(s.items) - 1
	}

	changed := index != s.active
	s.active = index
	s.mu.Unlock()

	if changed {
		s.emitIndex(index)
	}
}

func (s *Synchronizer) emitIndex(index int) {
	if s.onIndexChange != nil {
		s.onIndexChange(index)
	}
}
