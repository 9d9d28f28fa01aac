// Package serverview models the server detail page as a small state machine:
// every load cycle starts in Loading and ends in exactly one terminal phase.
package serverview

import (
	"strconv"
	"strings"

	"github.com/target/serverboard/internal/domain/model"
)

// Phase is the render branch selected for the page.
type Phase int

const (
	// PhaseLoading is shown until the fetch for the current token resolves.
	PhaseLoading Phase = iota
	// PhaseAbsent follows a failed or empty fetch. It is terminal for the page.
	PhaseAbsent
	// PhasePresent holds a fetched server record.
	PhasePresent
	// PhaseInvalid is entered when the route id is not a positive integer; no fetch is made.
	PhaseInvalid
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAbsent:
		return "absent"
	case PhasePresent:
		return "present"
	case PhaseInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is the value the templates render. It is a pure projection: the same
// State always renders the same branch.
type State struct {
	Phase  Phase
	ID     int64
	Server *model.Server
	Viewer string
	// View identifies the page instance that issued the load.
	View string
}

// Loading returns the initial state for a server id.
func Loading(id int64, viewer string) State {
	return State{Phase: PhaseLoading, ID: id, Viewer: viewer}
}

// ForView returns s bound to the page instance view.
func (s State) ForView(view string) State {
	s.View = view
	return s
}

// Present returns a loaded state for srv.
func Present(srv *model.Server, viewer string) State {
	if srv == nil {
		return State{Phase: PhaseAbsent, Viewer: viewer}
	}
	return State{Phase: PhasePresent, ID: srv.ID, Server: srv, Viewer: viewer}
}

// Invalid returns the state for an unparseable route id.
func Invalid(viewer string) State {
	return State{Phase: PhaseInvalid, Viewer: viewer}
}

// IsOwner reports whether the viewer owns the loaded server.
func (s State) IsOwner() bool {
	return s.Phase == PhasePresent && s.Server.OwnedBy(s.Viewer)
}

// ShowDelete reports whether the delete action renders. Exactly one of
// ShowDelete and ShowLeave is true in the present phase.
func (s State) ShowDelete() bool {
	return s.Phase == PhasePresent && s.IsOwner()
}

// ShowLeave reports whether the leave action renders.
func (s State) ShowLeave() bool {
	return s.Phase == PhasePresent && !s.IsOwner()
}

// ParseID parses a route id segment. Only positive integers are accepted.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
