package ui

import (
	"github.com/heilocal/heilocal/internal/models"
)

// Messages delivered to the program's update loop. Fetches and remote
// actions run as commands and report back through these.
type (
	locationsFetchedMsg struct {
		locations []models.Location
	}

	likeDoneMsg struct {
		id string
	}

	syncEventMsg struct {
		event syncEvent
	}

	errMsg struct {
		err error
	}
)

type syncEventKind int

const (
	eventIndexChanged syncEventKind = iota
	eventScrollTo
)

// syncEvent carries a synchronizer callback across goroutines into
// the update loop.
type syncEvent struct {
	kind  syncEventKind
	index int
}
