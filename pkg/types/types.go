package types

import "time"

// Defaults for WorkerConfig intervals, in loop iterations.
const (
	DefaultCoordinationInterval = 500
	DefaultProgressInterval     = 1_000
)

// Result represents a claimed vanity match
type Result struct {
	PrivateKey  string // hex-encoded 32-byte scalar
	ExtendedKey string // bech32 xprv record
	Address     string
	WorkerID    int
	Attempts    uint64
	Duration    time.Duration
}

// WorkerConfig contains configuration shared read-only by all workers
type WorkerConfig struct {
	HRP    string
	Vanity string

	// hrp + separator + vanity, precomputed for the hot path
	AddressPrefix string

	// Iterations between checks of the found flag; also the attempt
	// counter batch size.
	CoordinationInterval uint64
	// Iterations between progress snapshots from the reporting worker.
	ProgressInterval uint64
}
