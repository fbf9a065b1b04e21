// Package config provides configuration loading for protod.
package config

import (
	"fmt"
	"time"

	"github.com/rootcode-org/protothread/internal/logging"
)

// Config is the full protod configuration.
type Config struct {
	Logging logging.Config `koanf:"logging"`
	Server  ServerConfig   `koanf:"server"`
	Runner  RunnerConfig   `koanf:"runner"`
	Sim     SimConfig      `koanf:"sim"`
}

// ServerConfig controls the HTTP surface (health and metrics).
type ServerConfig struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `koanf:"listen_addr"`
}

// RunnerConfig controls the polling driver.
type RunnerConfig struct {
	// TickInterval is how often every live thread is polled.
	TickInterval time.Duration `koanf:"tick_interval"`

	// StopWhenIdle stops the runner once no live threads remain.
	StopWhenIdle bool `koanf:"stop_when_idle"`
}

// SimConfig sizes the demo workload.
type SimConfig struct {
	// Blinkers is the number of blinker entities to register.
	Blinkers int `koanf:"blinkers"`

	// BlinkCycles is how many on/off cycles each blinker performs.
	BlinkCycles int `koanf:"blink_cycles"`

	// Patrols is the number of patrol entities to register.
	Patrols int `koanf:"patrols"`

	// Waypoints is how many waypoints each patrol visits.
	Waypoints int `koanf:"waypoints"`

	// DwellTime is how long a patrol sleeps at each waypoint.
	DwellTime time.Duration `koanf:"dwell_time"`
}

// NewDefaultConfig returns config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Logging: *logging.NewDefaultConfig(),
		Server: ServerConfig{
			ListenAddr: ":9190",
		},
		Runner: RunnerConfig{
			TickInterval: 50 * time.Millisecond,
			StopWhenIdle: true,
		},
		Sim: SimConfig{
			Blinkers:    4,
			BlinkCycles: 10,
			Patrols:     2,
			Waypoints:   3,
			DwellTime:   200 * time.Millisecond,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if c.Runner.TickInterval <= 0 {
		return fmt.Errorf("runner.tick_interval must be positive, got %s", c.Runner.TickInterval)
	}
	if c.Sim.Blinkers < 0 || c.Sim.Patrols < 0 {
		return fmt.Errorf("sim workload sizes must not be negative")
	}
	if c.Sim.DwellTime < 0 {
		return fmt.Errorf("sim.dwell_time must not be negative, got %s", c.Sim.DwellTime)
	}
	return nil
}
