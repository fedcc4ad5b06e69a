// Package commands holds the cobra command tree of the server binary.
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// RootOptions holds state shared by every command
type RootOptions struct {
	EnvFile string

	// LoadConfig returns the configuration; tests replace it
	LoadConfig func() *config.Config
	Config     *config.Config
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{LoadConfig: config.GetConfig})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "property-manager",
		Short:         "Property Manager - rent, repairs and compliance for a letting agency",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "environment file to load when present")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateUserCommand(opts))
	cmd.AddCommand(NewDueCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

// setup loads the environment, validates the configuration and starts the logger
func (o *RootOptions) setup() error {
	envErr := godotenv.Load(o.EnvFile)

	cfg := o.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := Logger.SetupLogger(Logger.Options{Env: cfg.AppEnv, LogDir: cfg.LogDir}); err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	if envErr != nil {
		Logger.Warning("could not load %s: %v", o.EnvFile, envErr)
	}

	models.SetDateLocation(cfg.Location())
	o.Config = cfg
	return nil
}
