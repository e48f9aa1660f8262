package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/nomis52/mergington/logging"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr      = ":8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultMetricsPrefix   = "mergington"
	defaultJobName         = "activities"
	defaultPushTimeout     = 30 * time.Second
)

// ServerConfig represents the server runtime configuration.
type ServerConfig struct {
	Listener   ListenerConfig   `yaml:"listener"`
	Logging    logging.Config   `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	// Optional path to a YAML roster seed. The built-in activities are used
	// when empty.
	SeedFile string `yaml:"seed_file"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8080
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Optional TLS key pair. The server speaks plain HTTP when both are empty.
	TLSCert string `yaml:"tls_cert"`
	TLSKey  string `yaml:"tls_key"`
}

// MonitoringConfig controls the Prometheus remote write push of roster sizes.
// Scraping via /metrics is always available.
type MonitoringConfig struct {
	// Base URL of the remote write endpoint, e.g. http://victoria:8428
	PushURL string `yaml:"push_url"`
	// Cron spec (5 fields) for pushing roster gauges. Requires PushURL.
	PushSchedule string        `yaml:"push_schedule"`
	PushTimeout  time.Duration `yaml:"push_timeout"`
	Prefix       string        `yaml:"prefix"`
	Job          string        `yaml:"job"`
}

// Default returns a configuration with every default applied.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig reads the YAML config file at the given path and returns a ServerConfig struct.
func LoadConfig(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open server config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML server config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults sets reasonable default values for optional fields.
func (c *ServerConfig) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = defaultListenAddr
	}
	if c.Listener.ReadTimeout == 0 {
		c.Listener.ReadTimeout = defaultReadTimeout
	}
	if c.Listener.WriteTimeout == 0 {
		c.Listener.WriteTimeout = defaultWriteTimeout
	}
	if c.Listener.ShutdownTimeout == 0 {
		c.Listener.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Monitoring.Prefix == "" {
		c.Monitoring.Prefix = defaultMetricsPrefix
	}
	if c.Monitoring.Job == "" {
		c.Monitoring.Job = defaultJobName
	}
	if c.Monitoring.PushTimeout == 0 {
		c.Monitoring.PushTimeout = defaultPushTimeout
	}
}

// Validate checks the configuration for errors.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.Listener.ReadTimeout < 0 || c.Listener.WriteTimeout < 0 || c.Listener.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("listener timeouts must not be negative"))
	}

	if (c.Listener.TLSCert == "") != (c.Listener.TLSKey == "") {
		errs = append(errs, errors.New("listener.tls_cert and listener.tls_key must be set together"))
	}

	if c.Monitoring.PushSchedule != "" {
		if c.Monitoring.PushURL == "" {
			errs = append(errs, errors.New("monitoring.push_schedule requires monitoring.push_url"))
		}
		if _, err := cron.ParseStandard(c.Monitoring.PushSchedule); err != nil {
			errs = append(errs, fmt.Errorf("monitoring.push_schedule %q: %w", c.Monitoring.PushSchedule, err))
		}
	}

	if c.Monitoring.PushURL != "" {
		u, err := url.Parse(c.Monitoring.PushURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("monitoring.push_url %q is not an absolute URL", c.Monitoring.PushURL))
		}
	}

	return errors.Join(errs...)
}

// Redacted returns a copy of the config with credentials removed, suitable for display.
func (c *ServerConfig) Redacted() ServerConfig {
	redacted := *c
	if u, err := url.Parse(c.Monitoring.PushURL); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "REDACTED")
			redacted.Monitoring.PushURL = u.String()
		}
	}
	return redacted
}
