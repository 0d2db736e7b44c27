package worker

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/screa/bech32-vanity-miner/internal/crypto"
	"github.com/screa/bech32-vanity-miner/pkg/progress"
	"github.com/screa/bech32-vanity-miner/pkg/state"
	"github.com/screa/bech32-vanity-miner/pkg/types"
)

// ProgressWorkerID is the worker that pushes attempt snapshots to the
// progress reporter.
const ProgressWorkerID = 0

// Observer receives search events for metrics.
type Observer interface {
	ObserveAttempts(n uint64)
	ObserveMatch(claimed bool)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempts(uint64) {}
func (nopObserver) ObserveMatch(bool)      {}

// Worker handles candidate generation and matching for one goroutine.
// It owns its key generator; nothing but the shared state is touched by
// other workers.
type Worker struct {
	id       int
	config   *types.WorkerConfig
	state    *state.State
	keys     *crypto.KeyGenerator
	reporter progress.Reporter
	observer Observer

	// chain code source for the winning xprv, independent of keys
	chainCodeRand io.Reader

	interval         uint64
	progressInterval uint64
	iterations       uint64
}

// Option customizes a Worker.
type Option func(*Worker)

// WithKeyGenerator replaces the worker's private key generator.
func WithKeyGenerator(g *crypto.KeyGenerator) Option {
	return func(w *Worker) { w.keys = g }
}

// WithChainCodeRand replaces the chain code random source.
func WithChainCodeRand(r io.Reader) Option {
	return func(w *Worker) { w.chainCodeRand = r }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(w *Worker) { w.observer = o }
}

// NewWorker creates a new worker instance
func NewWorker(id int, config *types.WorkerConfig, st *state.State, reporter progress.Reporter, opts ...Option) *Worker {
	if reporter == nil {
		reporter = progress.Nop{}
	}

	w := &Worker{
		id:               id,
		config:           config,
		interval:         config.CoordinationInterval,
		progressInterval: config.ProgressInterval,
		state:            st,
		reporter:         reporter,
		observer:         nopObserver{},
		chainCodeRand:    rand.Reader,
	}
	if w.interval == 0 {
		w.interval = types.DefaultCoordinationInterval
	}
	if w.progressInterval == 0 {
		w.progressInterval = types.DefaultProgressInterval
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.keys == nil {
		w.keys = crypto.NewKeyGenerator()
	}
	return w
}

// Run searches until this worker claims a match or observes that another
// worker did. It returns the result only if this worker won the claim.
func (w *Worker) Run() *types.Result {
	interval := w.interval

	for {
		key, address := w.nextCandidate()
		w.iterations++

		if w.matches(address) {
			if !w.claim() {
				return nil
			}
			w.state.AddAttempts(w.iterations % interval)
			w.observer.ObserveAttempts(w.iterations % interval)
			return w.report(key, address)
		}

		if w.iterations%interval == 0 {
			w.state.AddAttempts(interval)
			w.observer.ObserveAttempts(interval)
			w.reporter.Tick()
			if w.state.IsFound() {
				return nil
			}
		}

		if w.id == ProgressWorkerID && w.iterations%w.progressInterval == 0 {
			w.reporter.Update(w.state.Attempts())
		}
	}
}

// Iterations returns the number of candidates this worker has tried.
func (w *Worker) Iterations() uint64 {
	return w.iterations
}

// nextCandidate draws a key pair and derives its address. Failures here
// mean a broken RNG or encoder and are not recoverable.
func (w *Worker) nextCandidate() (*secp256k1.PrivateKey, string) {
	key, err := w.keys.GenerateCandidate()
	if err != nil {
		panic(fmt.Errorf("worker %d: %w", w.id, err))
	}
	address, err := crypto.CandidateAddress(w.config.HRP, key)
	if err != nil {
		panic(fmt.Errorf("worker %d: encode address: %w", w.id, err))
	}
	return key, address
}

// matches reports whether address starts with hrp + separator + vanity
func (w *Worker) matches(address string) bool {
	return strings.HasPrefix(address, w.config.AddressPrefix)
}

// claim tries to become the single winner. A match found after another
// worker has already won is dropped.
func (w *Worker) claim() bool {
	if w.state.IsFound() || !w.state.TryClaimFound() {
		w.observer.ObserveMatch(false)
		return false
	}
	w.observer.ObserveMatch(true)
	return true
}

// report builds the winning result, including the xprv record.
func (w *Worker) report(key *secp256k1.PrivateKey, address string) *types.Result {
	priv := key.Serialize()
	xprv, err := crypto.EncodeExtendedKey(w.chainCodeRand, priv)
	if err != nil {
		panic(fmt.Errorf("worker %d: encode extended key: %w", w.id, err))
	}

	return &types.Result{
		PrivateKey:  hex.EncodeToString(priv),
		ExtendedKey: xprv,
		Address:     address,
		WorkerID:    w.id,
	}
}
