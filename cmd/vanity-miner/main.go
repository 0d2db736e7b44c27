package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/screa/bech32-vanity-miner/internal/config"
	logpkg "github.com/screa/bech32-vanity-miner/internal/logger"
	"github.com/screa/bech32-vanity-miner/internal/metrics"
	minerpkg "github.com/screa/bech32-vanity-miner/pkg/miner"
	"github.com/screa/bech32-vanity-miner/pkg/progress"
	"github.com/screa/bech32-vanity-miner/pkg/types"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd(config.NewConfig())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vanity-miner <vanity-string>",
		Short: "Vanity address generator for bech32 secp256k1 addresses",
		Long: `Vanity address generator using curve secp256k1 and the bech32 format <hrp>1<string>.
Workers draw random keys until an address starts with the requested string,
then print the private key, an xprv record and the address.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Vanity = args[0]
			return runMiner(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&cfg.HRP, "hrp", "H", config.DefaultHRP, "Human-readable part of the vanity address (e.g. wit, twit, bc)")
	cmd.Flags().IntVarP(&cfg.Threads, "threads", "t", runtime.NumCPU(), "Number of worker goroutines, at most the number of CPUs")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stderr)")
	cmd.Flags().StringVarP(&cfg.MetricsAddr, "metrics-addr", "m", "", "Serve Prometheus metrics on this address (disabled when empty)")

	return cmd
}

func runMiner(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	// Validate configuration before any worker exists
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ClampThreads(runtime.NumCPU())

	logger, logOut, closeLog, err := setupLogging(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		metrics.StartServer(ctx, cfg.MetricsAddr, logger.SugaredLogger)
	}

	fmt.Fprintf(stdout, "\nSearching vanity addresses with the prefix: %s (threads: %d)\n\n", cfg.Prefix(), cfg.Threads)
	logger.Debugf("Target: %s", cfg.GetTargetDescription())

	reporter := progress.NewBarReporter(logOut, progress.EstimatedRuns(cfg.Vanity), progress.DefaultThrottle)
	miner := minerpkg.NewMiner(cfg, logger, reporter)

	// Start mining in a goroutine
	resultChan := make(chan *types.Result, 1)
	go func() {
		resultChan <- miner.Mine()
	}()

	select {
	case result := <-resultChan:
		if result == nil {
			return fmt.Errorf("search finished without a result")
		}
		printResult(stdout, result)
		rate := 0.0
		if result.Duration.Seconds() > 0 {
			rate = float64(result.Attempts) / result.Duration.Seconds()
		}
		logger.Debugf("Found by worker %d after %d attempts in %v (%.2f keys/sec)",
			result.WorkerID, result.Attempts, result.Duration, rate)
		return nil
	case <-ctx.Done():
		// Workers only stop with the process
		logger.Printf("Received interrupt signal after %d attempts, stopping.", miner.Attempts())
		return nil
	}
}

func printResult(w io.Writer, result *types.Result) {
	fmt.Fprintln(w, "\nVanity address found:")
	fmt.Fprintf(w, "\tSK bytes:\t%s\n", result.PrivateKey)
	fmt.Fprintf(w, "\tPrivate key:\t%s\n", result.ExtendedKey)
	fmt.Fprintf(w, "\tAddress:\t%s\n", result.Address)
}

// setupLogging returns the logger and the writer the progress bar shares
// with it: the log file when one is given, stderr otherwise.
func setupLogging(cfg *config.Config, stderr io.Writer) (*logpkg.Logger, io.Writer, func(), error) {
	if cfg.LogFile == "" {
		logger := logpkg.NewWriter(stderr)
		logger.SetVerbose(cfg.Verbose)
		return logger, stderr, func() { _ = logger.Sync() }, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logpkg.NewWriter(file)
	logger.SetVerbose(cfg.Verbose)
	closeFn := func() {
		_ = logger.Sync()
		_ = file.Close()
	}
	return logger, file, closeFn, nil
}
