package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/codemetry/codemetry/internal/output"
)

// Build information set via ldflags
//
//nolint:gochecknoglobals // set during compilation
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			output.Infof("codemetry %s", version)
			output.Infof("Commit:     %s", commit)
			output.Infof("Build Date: %s", buildDate)
			output.Infof("Go Version: %s", runtime.Version())
			output.Infof("Platform:   %s/%s", runtime.GOOS, runtime.GOARCH)
		},
	}
}
