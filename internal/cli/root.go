// Package cli implements the command-line interface for codemetry.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codemetry/codemetry/internal/output"
)

// Flags holds the global CLI flags
type Flags struct {
	ConfigFile string
}

// NewRootCmd creates an isolated root command instance. Commands share
// no global state, so tests can execute them concurrently.
func NewRootCmd() *cobra.Command {
	flags := &Flags{ConfigFile: "codemetry.yaml"}

	cmd := &cobra.Command{
		Use:   "codemetry",
		Short: "Mirror repositories and browse per-file static-analysis metrics",
		Long: `codemetry serves a web API where users register, create projects,
connect a repository webhook and browse per-file static-analysis
metrics (raw line counts, Halstead complexity and control-flow graphs)
for C sources in the mirrored tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "codemetry.yaml", "Path to configuration file")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newMigrateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with signal-driven cancellation
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		output.Warn("Interrupt received, shutting down...")
		cancel()
	}()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
