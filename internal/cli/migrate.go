package cli

import (
	"github.com/spf13/cobra"

	"github.com/codemetry/codemetry/internal/config"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/output"
)

// newMigrateCmd creates the migrate command
func newMigrateCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Open the configured database and run schema migrations, then exit.
Useful for provisioning before the first serve.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.ConfigFile)
			if err != nil {
				return errors.WrapWithContext(err, "load configuration")
			}

			database, err := db.Open(db.OpenOptions{
				Path:        cfg.Database.Path,
				AutoMigrate: true,
			})
			if err != nil {
				return errors.WrapWithContext(err, "migrate database")
			}
			defer func() { _ = database.Close() }()

			output.Successf("database migrated: %s", cfg.Database.Path)
			return nil
		},
	}
}
