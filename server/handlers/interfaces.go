// Package handlers provides HTTP handlers for the activities server.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access server dependencies, avoiding
// circular imports.
package handlers

import (
	"github.com/nomis52/mergington/registry"
	"github.com/nomis52/mergington/server/config"
	"github.com/nomis52/mergington/server/types"
)

// ActivityLister provides the full set of activities.
type ActivityLister interface {
	List() map[string]registry.Activity
}

// ActivityGetter looks up a single activity.
type ActivityGetter interface {
	Get(name string) (registry.Activity, error)
}

// Enroller signs students up for activities.
type Enroller interface {
	Enroll(activity, email string) (registry.Confirmation, error)
}

// Withdrawer removes students from activities.
type Withdrawer interface {
	Withdraw(activity, email string) (registry.Confirmation, error)
}

// ConfigProvider provides access to the current configuration.
type ConfigProvider interface {
	Config() *config.ServerConfig
}

// PropertiesProvider provides metadata about the running server.
type PropertiesProvider interface {
	Properties() types.ServerProperties
}
