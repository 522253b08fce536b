package feed

import (
	"sync"
	"testing"
	"time"

	"github.com/heilocal/heilocal/internal/models"
)

const testDebounce = 10 * time.Millisecond

// settleWait gives the debounce timer room to fire on slow machines.
const settleWait = 20 * testDebounce

func fiveLocations() []models.Location {
	return []models.Location{
		{ID: "1", Name: "Sompasauna"},
		{ID: "2", Name: "Löyly"},
		{ID: "3", Name: "Café Regatta"},
		{ID: "4", Name: "Suomenlinna"},
		{ID: "5", Name: "Oodi"},
	}
}

// recorder collects synchronizer callbacks for assertions.
type recorder struct {
	mu       sync.Mutex
	indexes  []int
	scrollTo []int
}

func (r *recorder) onIndex(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes = append(r.indexes, i)
}

func (r *recorder) onScroll(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrollTo = append(r.scrollTo, i)
}

func (r *recorder) lastIndex() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.indexes) == 0 {
		return 0, false
	}
	return r.indexes[len(r.indexes)-1], true
}

func (r *recorder) indexCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.indexes)
}

func newTestSync(r *recorder) *Synchronizer {
	return NewSynchronizer(Opts{
		Debounce:      testDebounce,
		OnIndexChange: r.onIndex,
		OnScrollTo:    r.onScroll,
	})
}

func TestSynchronizer(t *testing.T) {
	t.Run("SetItems", func(t *testing.T) {
		t.Run("First Load Activates Index Zero", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)

			s.SetItems(fiveLocations())

			if idx, ok := s.ActiveIndex(); !ok || idx != 0 {
				t.Errorf("expected active index 0, got %d (ok=%v)", idx, ok)
			}
			if last, ok := rec.lastIndex(); !ok || last != 0 {
				t.Errorf("expected index change callback with 0, got %d (ok=%v)", last, ok)
			}
		})

		t.Run("Empty Sequence Has No Active Index", func(t *testing.T) {
			s := newTestSync(&recorder{})

			s.SetItems(nil)

			if _, ok := s.ActiveIndex(); ok {
				t.Error("expected no active index for an empty sequence")
			}
			if _, ok := s.PlayingID(); ok {
				t.Error("expected no playing item for an empty sequence")
			}
		})

		t.Run("Shrinking Clamps The Active Index", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)

			s.SetItems(fiveLocations())
			s.SelectID("5")
			s.SetItems(fiveLocations()[:2])

			if idx, ok := s.ActiveIndex(); !ok || idx != 1 {
				t.Errorf("expected index clamped to 1, got %d (ok=%v)", idx, ok)
			}
		})
	})

	t.Run("At Most One Item Plays", func(t *testing.T) {
		s := newTestSync(&recorder{})
		s.SetItems(fiveLocations())
		s.SelectID("3")

		playing := 0
		for _, l := range fiveLocations() {
			if s.IsPlaying(l.ID) {
				playing++
			}
		}

		if playing != 1 {
			t.Errorf("expected exactly one playing item, got %d", playing)
		}
		if id, _ := s.PlayingID(); id != "3" {
			t.Errorf("expected item 3 playing, got %q", id)
		}
	})

	t.Run("SelectID", func(t *testing.T) {
		t.Run("Known Id Activates And Scrolls", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			if !s.SelectID("4") {
				t.Fatal("expected SelectID to report success")
			}
			if idx, _ := s.ActiveIndex(); idx != 3 {
				t.Errorf("expected active index 3, got %d", idx)
			}

			rec.mu.Lock()
			scrolls := len(rec.scrollTo)
			last := -1
			if scrolls > 0 {
				last = rec.scrollTo[scrolls-1]
			}
			rec.mu.Unlock()

			if scrolls == 0 || last != 3 {
				t.Errorf("expected scroll-to callback with 3, got %v", rec.scrollTo)
			}
		})

		t.Run("Unknown Id Leaves State Unchanged", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			if s.SelectID("missing") {
				t.Error("expected SelectID to report failure")
			}
			if idx, _ := s.ActiveIndex(); idx != 0 {
				t.Errorf("expected active index unchanged at 0, got %d", idx)
			}
		})

		t.Run("Reselecting The Active Item Still Scrolls", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			s.SelectID("2")
			s.SelectID("2")

			rec.mu.Lock()
			scrolls := len(rec.scrollTo)
			rec.mu.Unlock()

			if scrolls != 2 {
				t.Errorf("expected a scroll per selection, got %d", scrolls)
			}
		})
	})

	t.Run("Scroll", func(t *testing.T) {
		t.Run("Settles On The Rounded Viewport Index", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			// 1600px offset in an 800px viewport lands on index 2.
			s.Scroll(1600, 800)
			time.Sleep(settleWait)

			if idx, _ := s.ActiveIndex(); idx != 2 {
				t.Errorf("expected active index 2, got %d", idx)
			}
			if id, _ := s.PlayingID(); id != "3" {
				t.Errorf("expected item 3 playing, got %q", id)
			}
		})

		t.Run("Rounds Half Up", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			s.Scroll(1200, 800) // 1.5 viewports
			time.Sleep(settleWait)

			if idx, _ := s.ActiveIndex(); idx != 2 {
				t.Errorf("expected half offsets to round up to 2, got %d", idx)
			}
		})

		t.Run("Clamps Past The Last Item", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			s.Scroll(80000, 800)
			time.Sleep(settleWait)

			if idx, _ := s.ActiveIndex(); idx != 4 {
				t.Errorf("expected clamp to last index 4, got %d", idx)
			}
		})

		t.Run("Debounce Keeps Only The Last Position", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())
			before := rec.indexCount()

			// A rapid burst during one debounce window.
			s.Scroll(800, 800)
			s.Scroll(1600, 800)
			s.Scroll(2400, 800)
			time.Sleep(settleWait)

			if idx, _ := s.ActiveIndex(); idx != 3 {
				t.Errorf("expected final position 3, got %d", idx)
			}
			if got := rec.indexCount() - before; got != 1 {
				t.Errorf("expected a single settle for the burst, got %d", got)
			}
		})

		t.Run("Unchanged Index Emits Nothing", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())
			before := rec.indexCount()

			s.Scroll(10, 800) // still index 0
			time.Sleep(settleWait)

			if got := rec.indexCount() - before; got != 0 {
				t.Errorf("expected no emission for an unchanged index, got %d", got)
			}
		})

		t.Run("Zero Viewport Height Is Ignored", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)
			s.SetItems(fiveLocations())

			s.Scroll(1600, 0)
			time.Sleep(settleWait)

			if idx, _ := s.ActiveIndex(); idx != 0 {
				t.Errorf("expected index unchanged at 0, got %d", idx)
			}
		})

		t.Run("Scroll On An Empty Sequence Is A No-Op", func(t *testing.T) {
			rec := &recorder{}
			s := newTestSync(rec)

			s.Scroll(1600, 800)
			time.Sleep(settleWait)

			if _, ok := s.ActiveIndex(); ok {
				t.Error("expected no active index on an empty sequence")
			}
		})
	})
}
