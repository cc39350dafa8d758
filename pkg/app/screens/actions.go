package screens

import (
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
)

type actionKind int

const (
	actionNone actionKind = iota
	actionQuit
	actionOpen
	actionBack
	actionFetch
)

// action tells the root screen what a child screen wants done
type action struct {
	kind  actionKind
	rover rovers.Rover
	query services.PhotoQuery
}
