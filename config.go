package netplay

import (
	"time"

	"github.com/netplay-go/netplay/logging"
)

// A RevertReference selects which state reverted non-local entities are
// restored to when anti-ping is disabled.
type RevertReference uint8

const (
	// RevertToNewestSnapshot restores non-local entities to the newest
	// authoritative snapshot. This is the default.
	RevertToNewestSnapshot RevertReference = iota
	// RevertToPreviousSnapshot restores them to the previously confirmed
	// snapshot, one server update in the past. Falls back to the newest
	// snapshot while no prior state is buffered.
	RevertToPreviousSnapshot
)

// Config contains all configuration data of a prediction session.
type Config struct {
	// TicksPerSecond is the fixed simulation rate.
	// If unset, a rate of 50 ticks per second is used.
	TicksPerSecond uint64
	// AntiPing keeps the speculative state of non-local entities after a
	// reconciliation replay. When false, non-local entities are reverted
	// to the authoritative state once the replay catches up.
	AntiPing bool
	// RevertReference selects the state reverted entities are restored
	// to. Ignored when AntiPing is set.
	RevertReference RevertReference
	// InitialPing seeds the timer before the first real RTT sample, e.g.
	// with the connect handshake duration.
	// If unset, 100ms are assumed.
	InitialPing time.Duration
	// Tracer receives prediction events of the session.
	Tracer *logging.SessionTracer
}

const defaultTicksPerSecond = 50

const defaultInitialPing = 100 * time.Millisecond

// Clone clones the Config.
// It returns nil when the Config is nil.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func populateConfig(config *Config) *Config {
	config = config.Clone()
	if config == nil {
		config = &Config{}
	}
	if config.TicksPerSecond == 0 {
		config.TicksPerSecond = defaultTicksPerSecond
	}
	if config.InitialPing <= 0 {
		config.InitialPing = defaultInitialPing
	}
	return config
}
