package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nomis52/mergington/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded on the registrations counter.
const (
	OutcomeOK                = "ok"
	OutcomeNotFound          = "not_found"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeFull              = "full"
	OutcomeNotRegistered     = "not_registered"
	OutcomeError             = "error"
)

// unknownActivity replaces the activity label for requests naming an activity
// that does not exist, so arbitrary paths cannot grow the label set.
const unknownActivity = "unknown"

// RosterMetrics records signups, unregistrations and roster sizes.
// It implements registry.Observer.
type RosterMetrics struct {
	registrations CounterVec
	participants  GaugeVec
	capacity      GaugeVec
}

var _ registry.Observer = (*RosterMetrics)(nil)

// NewRosterMetrics registers the roster metrics with reg.
func NewRosterMetrics(reg Registry) (*RosterMetrics, error) {
	registrations, err := reg.NewCounterVec(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Signup and unregister attempts by activity and outcome.",
	}, []string{"activity", "action", "outcome"})
	if err != nil {
		return nil, err
	}

	participants, err := reg.NewGaugeVec(prometheus.GaugeOpts{
		Name: "participants",
		Help: "Current number of participants per activity.",
	}, []string{"activity"})
	if err != nil {
		return nil, err
	}

	capacity, err := reg.NewGaugeVec(prometheus.GaugeOpts{
		Name: "capacity",
		Help: "Maximum number of participants per activity.",
	}, []string{"activity"})
	if err != nil {
		return nil, err
	}

	return &RosterMetrics{
		registrations: registrations,
		participants:  participants,
		capacity:      capacity,
	}, nil
}

// Init sets the roster gauges from the current state of every activity.
func (m *RosterMetrics) Init(activities map[string]registry.Activity) {
	for name, a := range activities {
		m.participants.With(prometheus.Labels{"activity": name}).Set(float64(len(a.Participants)))
		m.capacity.With(prometheus.Labels{"activity": name}).Set(float64(a.MaxParticipants))
	}
}

// Enrolled implements registry.Observer.
func (m *RosterMetrics) Enrolled(activity string, size int) {
	m.registrations.With(prometheus.Labels{"activity": activity, "action": string(registry.ActionSignup), "outcome": OutcomeOK}).Inc()
	m.participants.With(prometheus.Labels{"activity": activity}).Set(float64(size))
}

// Withdrawn implements registry.Observer.
func (m *RosterMetrics) Withdrawn(activity string, size int) {
	m.registrations.With(prometheus.Labels{"activity": activity, "action": string(registry.ActionUnregister), "outcome": OutcomeOK}).Inc()
	m.participants.With(prometheus.Labels{"activity": activity}).Set(float64(size))
}

// Rejected implements registry.Observer.
func (m *RosterMetrics) Rejected(action registry.Action, activity string, err error) {
	outcome := Outcome(err)
	if outcome == OutcomeNotFound {
		activity = unknownActivity
	}
	m.registrations.With(prometheus.Labels{"activity": activity, "action": string(action), "outcome": outcome}).Inc()
}

// Outcome maps a registry error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, registry.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, registry.ErrAlreadyRegistered):
		return OutcomeAlreadyRegistered
	case errors.Is(err, registry.ErrFull):
		return OutcomeFull
	case errors.Is(err, registry.ErrNotRegistered):
		return OutcomeNotRegistered
	default:
		return OutcomeError
	}
}

// ActivityLister provides the current roster.
type ActivityLister interface {
	List() map[string]registry.Activity
}

// RosterSnapshot converts the roster into remote write samples, one
// participants and one capacity sample per activity.
func RosterSnapshot(activities map[string]registry.Activity, now time.Time) []Metric {
	ms := make([]Metric, 0, 2*len(activities))
	for name, a := range activities {
		labels := map[string]string{"activity": name}
		ms = append(ms,
			Metric{Name: "participants", Value: float64(len(a.Participants)), Labels: labels, Timestamp: now},
			Metric{Name: "capacity", Value: float64(a.MaxParticipants), Labels: labels, Timestamp: now},
		)
	}
	return ms
}

// RosterPusher pushes a roster snapshot each time it is run.
type RosterPusher struct {
	client  *Client
	lister  ActivityLister
	logger  *slog.Logger
	timeout time.Duration
}

// NewRosterPusher creates a RosterPusher.
func NewRosterPusher(client *Client, lister ActivityLister, logger *slog.Logger, timeout time.Duration) *RosterPusher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &RosterPusher{
		client:  client,
		lister:  lister,
		logger:  logger,
		timeout: timeout,
	}
}

// Run pushes the current roster.
func (p *RosterPusher) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ms := RosterSnapshot(p.lister.List(), time.Now())
	if err := p.client.PushMetrics(ctx, ms...); err != nil {
		return fmt.Errorf("pushing roster metrics: %w", err)
	}
	p.logger.Debug("roster metrics pushed", "count", len(ms))
	return nil
}
