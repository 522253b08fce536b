// Package ui implements the interactive feed-and-map terminal interface using bubbletea's Elm architecture.
//
// The screen is split into two panes over one shared location sequence:
//  1. Feed pane: a scrollable [list.Model] of locations, one "playing" at a time
//  2. Map pane: a marker per location plus a detail card for the active one
//
// The panes stay consistent through a [feed.Synchronizer], which owns the
// active index:
//   - Scrolling the feed reports a synthetic pixel offset; the synchronizer
//     debounces the burst and settles on round(offset/viewportHeight).
//   - Selecting a map marker resolves the location id to its sequence
//     position and commands the feed to scroll there.
//
// Synchronizer callbacks fire on timer goroutines, so they are bridged into
// the update loop over a channel: each callback becomes a [syncEventMsg]
// and the waitForSync command re-arms itself after every delivery.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, tab, l, r, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
