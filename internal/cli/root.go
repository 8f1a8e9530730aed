// Package cli implements the leadboard command-line interface: the
// presentation layer that calls the lead engine and reports each outcome.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/leadboard/internal/paths"
	"github.com/mesh-intelligence/leadboard/internal/pipeline"
	"github.com/mesh-intelligence/leadboard/internal/storage"
	"github.com/mesh-intelligence/leadboard/pkg/leads"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "leadboard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}

	root := &cobra.Command{
		Use:   "leadboard",
		Short: "Track sales leads through a pipeline",
		Long: "leadboard keeps sales leads in local storage, moves them through the\n" +
			"new, contacted, qualified, closed and lost stages, and flags idle\n" +
			"leads for follow-up.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return userError{err}
	})

	// Global persistent flags.
	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/leadboard)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/leadboard)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newMoveCmd(a))
	root.AddCommand(newFollowCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newAutomateCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newClearCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "leadboard: %s\n", err)
	}
	os.Exit(exitCode(err))
}

// setup resolves the config directory, loads config.yaml and configures
// logging. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir.Dir)
	if err != nil {
		return err
	}
	a.configDir = configDir.Dir
	a.config = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.GetString(cfgKeyLogLevel), a.flags.verbose)
	slog.SetDefault(a.logger)
	a.logger.Debug("config directory", "dir", configDir.Dir, "source", configDir.Source)
	return nil
}

// storeConfig returns the backend selection for the resolved data directory
// and the layer the directory came from.
func (a *app) storeConfig() (types.Config, paths.Source, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve data dir: %w", err)
	}
	a.logger.Debug("data directory", "dir", dataDir.Dir, "source", dataDir.Source)
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir.Dir,
	}, dataDir.Source, nil
}

// openService opens the configured store and wraps it in a pipeline
// service. The caller must call the returned close function.
func (a *app) openService() (*pipeline.Service, func() error, error) {
	cfg, _, err := a.storeConfig()
	if err != nil {
		return nil, nil, err
	}
	rule, err := leads.NewRule(a.config.GetDuration(cfgKeyIdleAfter))
	if err != nil {
		return nil, nil, userError{fmt.Errorf("%s: %w", cfgKeyIdleAfter, err)}
	}
	store, err := storage.Open(cfg, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	a.logger.Debug("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	svc := pipeline.New(store, pipeline.WithRule(rule), pipeline.WithLogger(a.logger))
	return svc, store.Close, nil
}

// withService opens the service, runs fn and closes the store.
func (a *app) withService(fn func(*pipeline.Service) error) (err error) {
	svc, closeStore, err := a.openService()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(svc)
}

// userError marks an error caused by invalid input rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// userErrors are the sentinels reported with exitUserError.
var userErrors = []error{
	types.ErrInvalidStage,
	types.ErrInvalidName,
	types.ErrInvalidPhone,
	types.ErrInvalidInterest,
	types.ErrInvalidThreshold,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
