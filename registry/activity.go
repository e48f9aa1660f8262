package registry

import (
	"fmt"
	"slices"
)

// Activity is a single extracurricular offering and its current roster.
type Activity struct {
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	// Participants is kept in signup order.
	Participants []string `json:"participants" yaml:"participants"`
}

// Confirmation is returned by a successful Enroll or Withdraw.
type Confirmation struct {
	Activity string `json:"-"`
	Email    string `json:"-"`
	Message  string `json:"message"`
}

// SpotsLeft returns how many more participants the activity can take.
func (a Activity) SpotsLeft() int {
	return max(a.MaxParticipants-len(a.Participants), 0)
}

// IsFull reports whether the roster has reached capacity.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

func (a Activity) clone() Activity {
	a.Participants = slices.Clone(a.Participants)
	if a.Participants == nil {
		a.Participants = []string{}
	}
	return a
}

// validate checks the roster invariants for a seeded activity.
func (a Activity) validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: activity name must not be empty", ErrInvalidSeed)
	}
	if a.MaxParticipants <= 0 {
		return fmt.Errorf("%w: %q: max_participants must be positive, got %d", ErrInvalidSeed, name, a.MaxParticipants)
	}
	if len(a.Participants) > a.MaxParticipants {
		return fmt.Errorf("%w: %q: %d participants exceed capacity %d", ErrInvalidSeed, name, len(a.Participants), a.MaxParticipants)
	}
	seen := make(map[string]bool, len(a.Participants))
	for _, p := range a.Participants {
		if seen[p] {
			return fmt.Errorf("%w: %q: duplicate participant %q", ErrInvalidSeed, name, p)
		}
		seen[p] = true
	}
	return nil
}
