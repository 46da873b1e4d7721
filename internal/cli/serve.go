package cli

import (
	"github.com/spf13/cobra"

	"github.com/codemetry/codemetry/internal/auth"
	"github.com/codemetry/codemetry/internal/config"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/gh"
	"github.com/codemetry/codemetry/internal/handler"
	"github.com/codemetry/codemetry/internal/logging"
	"github.com/codemetry/codemetry/internal/output"
	"github.com/codemetry/codemetry/internal/server"
	"github.com/codemetry/codemetry/internal/syncer"
)

// newServeCmd creates the serve command
func newServeCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long: `Load configuration, open the database and serve the HTTP API until
interrupted. The database schema is migrated on startup.`,
		Example: `  # Serve with the default config file
  codemetry serve

  # Serve with an explicit config
  codemetry serve --config /etc/codemetry/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.ConfigFile)
			if err != nil {
				return errors.WrapWithContext(err, "load configuration")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}

			database, err := db.Open(db.OpenOptions{
				Path:        cfg.Database.Path,
				AutoMigrate: true,
			})
			if err != nil {
				return errors.WrapWithContext(err, "open database")
			}
			defer func() { _ = database.Close() }()

			store := db.NewStore(database)
			client := gh.NewClient(logger, gh.Options{
				Token:             cfg.GitHub.Token,
				RequestTimeout:    cfg.GitHub.RequestTimeout,
				RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
			})
			engine := syncer.New(client, store, nil, logger)

			tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}

			h := handler.New(store, engine, client, tokens, auth.NewPasswordHasher(), logger)
			srv := server.New(h, logger, server.Options{
				Port:            cfg.Server.Port,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			})

			output.Infof("codemetry listening on port %d", cfg.Server.Port)
			return srv.Run(cmd.Context())
		},
	}
}
