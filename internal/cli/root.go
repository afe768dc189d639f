package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MamurS/InsurTech-sub004/internal/service"
	"github.com/MamurS/InsurTech-sub004/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string
	Actor      string
	ConfigFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the MOSAIC claims CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mosaic-claims",
		Short: "MOSAIC claims ledger",
		Long: `mosaic-claims manages reinsurance claims against policy coverage:
registering losses, appending immutable ledger entries, moving claims
through their lifecycle, and importing portfolio files.

Configuration is read from flags, MOSAIC_* environment variables, and an
optional config file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Actor, "actor", "", "user recorded on mutations")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: $HOME/.mosaic/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewPolicyCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewTxCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig fills unset flags from MOSAIC_* environment variables and an
// optional YAML config file. Flags always win.
func loadConfig(opts *RootOptions) error {
	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.mosaic")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MOSAIC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; an explicit one must load.
		if opts.ConfigFile != "" {
			return fmt.Errorf("reading config %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Database == "" {
		opts.Database = v.GetString("db")
	}
	if opts.Actor == "" {
		opts.Actor = v.GetString("actor")
	}
	return nil
}

func configureLogging(opts *RootOptions) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openService opens the database named by --db (or MOSAIC_DB) and wraps it
// in a claim service. The caller must Close the returned store.
func openService(opts *RootOptions) (*service.Service, *store.Store, error) {
	if opts.Database == "" {
		return nil, nil, NewExitError(ExitCommandError, "no database: set --db or MOSAIC_DB")
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	svc := service.New(st, service.WithLogger(slog.Default()))
	return svc, st, nil
}

// newFormatter builds the formatter for a command, writing results to the
// command's stdout and diagnostics to its stderr.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mosaic-claims v0.3.0")
		},
	}
}
