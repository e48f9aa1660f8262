package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Action names a roster change.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Observer is notified after every roster change attempt. Enrolled and
// Withdrawn are called with the registry lock held, so sizes arrive in the
// order the changes happened; implementations must not call back into the
// Registry.
type Observer interface {
	// Enrolled is called after email was added; size is the new roster size.
	Enrolled(activity string, size int)
	// Withdrawn is called after email was removed; size is the new roster size.
	Withdrawn(activity string, size int)
	// Rejected is called when Enroll or Withdraw fails.
	Rejected(action Action, activity string, err error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver registers an observer for roster changes.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observers = append(r.observers, o)
	}
}

// Registry is the set of activities keyed by name. The key set is fixed at
// construction; only rosters change.
//
// A single mutex guards every read-check-mutate sequence so the capacity and
// uniqueness invariants hold under concurrent requests.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
	observers  []Observer
}

// New creates a Registry from seed. The seed is copied; later changes to it
// are not seen by the registry.
func New(seed map[string]Activity, opts ...Option) (*Registry, error) {
	r := &Registry{
		activities: make(map[string]*Activity, len(seed)),
	}

	var errs []error
	for name, a := range seed {
		if err := a.validate(name); err != nil {
			errs = append(errs, err)
			continue
		}
		c := a.clone()
		r.activities[name] = &c
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Names returns the activity names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.activities))
}

// List returns a copy of every activity keyed by name.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		result[name] = a.clone()
	}
	return result
}

// Get returns a copy of a single activity.
func (r *Registry) Get(name string) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return a.clone(), nil
}

// Enroll adds email to the named activity's roster.
//
// A duplicate signup is reported as ErrAlreadyRegistered even if the activity
// is also full.
func (r *Registry) Enroll(name, email string) (Confirmation, error) {
	if err := r.enroll(name, email); err != nil {
		r.notifyRejected(ActionSignup, name, err)
		return Confirmation{}, err
	}
	return Confirmation{
		Activity: name,
		Email:    email,
		Message:  fmt.Sprintf("Signed up %s for %s", email, name),
	}, nil
}

func (r *Registry) enroll(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if a.Has(email) {
		return fmt.Errorf("%w: %s in %q", ErrAlreadyRegistered, email, name)
	}
	if a.IsFull() {
		return fmt.Errorf("%w: %q has %d of %d places taken", ErrFull, name, len(a.Participants), a.MaxParticipants)
	}
	a.Participants = append(a.Participants, email)

	for _, o := range r.observers {
		o.Enrolled(name, len(a.Participants))
	}
	return nil
}

// Withdraw removes email from the named activity's roster. The order of the
// remaining participants is preserved.
func (r *Registry) Withdraw(name, email string) (Confirmation, error) {
	if err := r.withdraw(name, email); err != nil {
		r.notifyRejected(ActionUnregister, name, err)
		return Confirmation{}, err
	}
	return Confirmation{
		Activity: name,
		Email:    email,
		Message:  fmt.Sprintf("Unregistered %s from %s", email, name),
	}, nil
}

func (r *Registry) withdraw(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return fmt.Errorf("%w: %s in %q", ErrNotRegistered, email, name)
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)

	for _, o := range r.observers {
		o.Withdrawn(name, len(a.Participants))
	}
	return nil
}

func (r *Registry) notifyRejected(action Action, name string, err error) {
	for _, o := range r.observers {
		o.Rejected(action, name, err)
	}
}
