// README: Pickup request aggregate and status definitions.
package request

import (
	"time"

	"campusride/internal/modules/matching"
	"campusride/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Request is a hostelite waiting to be picked up on the way to the destination.
type Request struct {
	ID            types.ID
	Name          string
	Contact       string
	Pickup        types.Point
	Destination   types.Point
	Status        Status
	StatusVersion int
	CreatedAt     time.Time
	CancelledAt   *time.Time
}

// Candidate is the waiting-pool view of a request.
func (r *Request) Candidate() matching.Candidate {
	return matching.Candidate{
		ID:          r.ID,
		Name:        r.Name,
		Position:    r.Pickup,
		Destination: r.Destination,
		Contact:     r.Contact,
	}
}

var AllowedTransitions = map[Status][]Status{
	StatusNone:    {StatusPending},
	StatusPending: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
