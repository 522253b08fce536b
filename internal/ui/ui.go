package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/heilocal/heilocal/internal/feed"
	"github.com/heilocal/heilocal/internal/locations"
	"github.com/heilocal/heilocal/internal/models"
)

// viewportHeight is the synthetic pixel height of the feed pane. Each
// scroll step moves the offset by one full viewport, so the settled
// index tracks the step count.
const viewportHeight = 800.0

type focusArea int

const (
	feedFocus focusArea = iota
	mapFocus
)

type Model struct {
	ctx    context.Context
	svc    *locations.Service
	logger *log.Logger

	sync   *feed.Synchronizer
	events chan syncEvent

	feedList  list.Model
	locations []models.Location
	offset    float64
	cursor    int
	focus     focusArea

	keys   keyMap
	help   help.Model
	status string
	err    error

	width  int
	height int
}

func NewModel(ctx context.Context, svc *locations.Service, logger *log.Logger) *Model {
	events := make(chan syncEvent, 8)

	sync := feed.NewSynchronizer(feed.Opts{
		OnIndexChange: func(index int) {
			events <- syncEvent{kind: eventIndexChanged, index: index}
		},
		OnScrollTo: func(index int) {
			events <- syncEvent{kind: eventScrollTo, index: index}
		},
	})

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "hei!local"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return &Model{
		ctx:      ctx,
		svc:      svc,
		logger:   logger,
		sync:     sync,
		events:   events,
		feedList: l,
		keys:     defaultKeyMap(),
		help:     help.New(),
		status:   "loading…",
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchLocations(), m.waitForSync())
}

// fetchLocations loads the feed from the remote service.
func (m *Model) fetchLocations() tea.Cmd {
	return func() tea.Msg {
		locs, err := m.svc.All(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return locationsFetchedMsg{locations: locs}
	}
}

// waitForSync blocks on the synchronizer callback channel and re-arms
// itself after every message.
func (m *Model) waitForSync() tea.Cmd {
	return func() tea.Msg {
		return syncEventMsg{event: <-m.events}
	}
}

func (m *Model) like(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Like(m.ctx, id); err != nil {
			return errMsg{err: err}
		}

		return likeDoneMsg{id: id}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feedList.SetSize(msg.Width/2-4, msg.Height-4)

		return m, nil

	case locationsFetchedMsg:
		m.locations = msg.locations
		m.sync.SetItems(msg.locations)
		m.refreshItems()
		m.status = fmt.Sprintf("%d locations", len(msg.locations))
		m.err = nil

		return m, nil

	case syncEventMsg:
		return m.handleSyncEvent(msg.event)

	case likeDoneMsg:
		m.locations = m.svc.Cached()
		m.refreshItems()
		m.status = "liked"

		return m, nil

	case errMsg:
		m.err = msg.err
		m.logger.Error("ui error", "error", msg.err)

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleSyncEvent(ev syncEvent) (tea.Model, tea.Cmd) {
	switch ev.kind {
	case eventIndexChanged:
		m.refreshItems()
		m.feedList.Select(ev.index)
	case eventScrollTo:
		// Selecting a marker jumps the scroll position so the next
		// scroll step starts from the selected item.
		m.offset = float64(ev.index) * viewportHeight
		m.feedList.Select(ev.index)
	}

	return m, m.waitForSync()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sync.Stop()

		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == feedFocus {
			m.focus = mapFocus
			if idx, ok := m.sync.ActiveIndex(); ok {
				m.cursor = idx
			}
		} else {
			m.focus = feedFocus
		}

		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = "reloading…"

		return m, m.fetchLocations()

	case key.Matches(msg, m.keys.Like):
		if id, ok := m.sync.PlayingID(); ok {
			return m, m.like(id)
		}

		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.scrollStep(-1), nil

	case key.Matches(msg, m.keys.Down):
		return m.scrollStep(1), nil

	case key.Matches(msg, m.keys.Select):
		if m.focus == mapFocus && m.cursor >= 0 && m.cursor < len(m.locations) {
			m.sync.SelectID(m.locations[m.cursor].ID)
		}

		return m, nil
	}

	return m, nil
}

// scrollStep moves focus one item in the given direction. In the feed
// pane the move is a debounced scroll through the synchronizer; in the
// map pane it only moves the marker cursor.
func (m *Model) scrollStep(dir int) tea.Model {
	if m.focus == mapFocus {
		m.cursor += dir
		if m.cursor < 0 {
			m.cursor = 0
		}

		if m.cursor >= len(m.locations) {
			m.cursor = len(m.locations) - 1
		}

		return m
	}

	m.offset += float64(dir) * viewportHeight
	if m.offset < 0 {
		m.offset = 0
	}

	max := float64(len(m.locations)-1) * viewportHeight
	if max >= 0 && m.offset > max {
		m.offset = max
	}

	m.sync.Scroll(m.offset, viewportHeight)

	return m
}

func (m *Model) refreshItems() {
	playing, _ := m.sync.PlayingID()
	m.feedList.SetItems(newItems(m.locations, playing))
}

func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("error: %v", m.err)) + "\n\n" + m.help.View(m.keys)
	}

	active := -1
	if idx, ok := m.sync.ActiveIndex(); ok {
		active = idx
	}

	paneWidth := m.width/2 - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	left := styles.pane.Width(paneWidth).Render(m.feedList.View())
	right := styles.pane.Width(paneWidth).Render(renderMap(m.locations, active, m.cursor, paneWidth-4))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := styles.help.Render(m.status) + "\n" + m.help.View(m.keys)

	return body + "\n" + footer
}

// Run starts the feed program and blocks until it exits.
func Run(ctx context.Context, svc *locations.Service, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(ctx, svc, logger), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("feed ui: %w", err)
	}

	return nil
}

var _ list.Item = locationItem{}
var _ tea.Model = (*Model)(nil)
