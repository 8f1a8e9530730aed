package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/leadboard/internal/paths"
	"github.com/mesh-intelligence/leadboard/internal/storage"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize leadboard storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nand open the storage backend once.",
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	cfg, source, err := a.storeConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// The data directory is recorded only when chosen by flag.
	var dataDir string
	if source == paths.SourceFlag {
		dataDir = cfg.DataDir
	}
	if err := writeConfigIfMissing(configPath(a.configDir), dataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	store, err := storage.Open(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "leadboard initialized (%s backend, data in %s, from %s)\n", cfg.Backend, cfg.DataDir, source)
	return nil
}
