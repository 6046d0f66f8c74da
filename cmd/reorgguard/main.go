package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// Exit codes of the check command.
const (
	exitOK                  = 0
	exitFailure             = 1
	exitReorg               = 2
	exitInsufficientHistory = 3
	exitConnection          = 4
	exitNodeInconsistent    = 5
)

// exitError carries a process exit code. A nil err means the code is the
// outcome itself and nothing should be printed as an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *exitError
		if !errors.As(err, &exitErr) || exitErr.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "reorgguard",
		Short: "ReorgGuard - blockchain reorganization detection",
		Long: `ReorgGuard compares the block hashes a consumer stored while processing a chain
with the hashes the node reports now. It tells whether the chain reorganized past
the consumer's watermark and which stored block is the newest one still valid.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")

	rootCmd.AddCommand(
		newCheckCmd(&configPath),
		newWatchCmd(&configPath),
		newHistoryCmd(&configPath),
		newRecordCmd(&configPath),
		newWatermarkCmd(&configPath),
		newSchemaCmd(),
	)

	return rootCmd
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFailure
}

// checkExitCode maps a reorg check outcome to the check command's exit code.
func checkExitCode(verdict reorg.Verdict, err error) int {
	switch {
	case err == nil && verdict.Reorg:
		return exitReorg
	case err == nil:
		return exitOK
	case reorg.IsInsufficientHistory(err):
		return exitInsufficientHistory
	case reorg.IsConnectionError(err):
		return exitConnection
	case reorg.IsNodeInconsistent(err):
		return exitNodeInconsistent
	default:
		return exitFailure
	}
}
