package booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// State selects a partition of a subject's bookings. It is a query filter
// and is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState resolves a state name, ignoring case.
func ParseState(raw string) (State, error) {
	for _, s := range knownStates {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("Unknown state: %s", raw)
}

// Role is the perspective from which a subject's bookings are listed.
type Role int

const (
	RoleBooker Role = iota
	RoleOwner
)

func (r Role) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}

// Subject identifies whose bookings a query returns: those the user made
// (RoleBooker) or those made on the user's items (RoleOwner).
type Subject struct {
	Role   Role
	UserID uuid.UUID
}

// Booker returns a booker-perspective Subject.
func Booker(id uuid.UUID) Subject { return Subject{Role: RoleBooker, UserID: id} }

// Owner returns an owner-perspective Subject.
func Owner(id uuid.UUID) Subject { return Subject{Role: RoleOwner, UserID: id} }
