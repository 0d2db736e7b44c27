package miner

import (
	"runtime"
	"sync"
	"time"

	"github.com/screa/bech32-vanity-miner/internal/config"
	"github.com/screa/bech32-vanity-miner/internal/crypto"
	"github.com/screa/bech32-vanity-miner/internal/logger"
	"github.com/screa/bech32-vanity-miner/internal/metrics"
	"github.com/screa/bech32-vanity-miner/pkg/progress"
	"github.com/screa/bech32-vanity-miner/pkg/state"
	"github.com/screa/bech32-vanity-miner/pkg/types"
	"github.com/screa/bech32-vanity-miner/pkg/worker"
)

// Miner coordinates a fixed pool of search workers
type Miner struct {
	config       *config.Config
	logger       *logger.Logger
	reporter     progress.Reporter
	metrics      *metrics.Search
	state        *state.State
	workerConfig *types.WorkerConfig

	mu     sync.Mutex
	result *types.Result
	wg     sync.WaitGroup
}

// NewMiner creates a new miner instance. cfg must already be validated.
func NewMiner(cfg *config.Config, log *logger.Logger, reporter progress.Reporter) *Miner {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}

	workerConfig := &types.WorkerConfig{
		HRP:                  cfg.HRP,
		Vanity:               cfg.Vanity,
		AddressPrefix:        crypto.AddressPrefix(cfg.HRP, cfg.Vanity),
		CoordinationInterval: types.DefaultCoordinationInterval,
		ProgressInterval:     types.DefaultProgressInterval,
	}

	return &Miner{
		config:       cfg,
		logger:       log,
		reporter:     reporter,
		metrics:      metrics.NewSearch(cfg.HRP),
		state:        state.New(),
		workerConfig: workerConfig,
	}
}

// Mine starts the workers, waits for all of them to stop and returns the
// single claimed result.
func (m *Miner) Mine() *types.Result {
	start := time.Now()

	for i := 0; i < m.config.Threads; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	m.logger.Debugf("Started %d workers searching for %s", m.config.Threads, m.workerConfig.AddressPrefix)

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result != nil {
		m.result.Attempts = m.state.Attempts()
		m.result.Duration = time.Since(start)
		m.metrics.ObserveFound(start)
		m.reporter.Finish(m.result.Attempts, "address found!")
	}
	return m.result
}

// worker runs one search worker to completion
func (m *Miner) worker(workerID int) {
	defer m.wg.Done()

	m.metrics.WorkerStarted()
	defer m.metrics.WorkerStopped()

	w := worker.NewWorker(workerID, m.workerConfig, m.state, m.reporter, worker.WithObserver(m.metrics))
	result := w.Run()
	m.logger.Debugf("Worker %d stopped after %d candidates", workerID, w.Iterations())
	if result == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// only the worker that won the claim returns a result
	m.result = result
}

// Attempts returns the current approximate attempt count
func (m *Miner) Attempts() uint64 {
	return m.state.Attempts()
}

