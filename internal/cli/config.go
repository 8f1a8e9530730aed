package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/leadboard/pkg/leads"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Environment variables override config keys: LEADBOARD_BACKEND,
	// LEADBOARD_LOG_LEVEL, LEADBOARD_AUTOMATION_IDLE_AFTER. data_dir is not
	// bound; LEADBOARD_DATA_DIR ranks below config.yaml and is applied by
	// paths.ResolveDataDir.
	envPrefix = "LEADBOARD"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyIdleAfter = "automation.idle_after"

	defaultBackend  = types.BackendFile
	defaultLogLevel = "warn"
)

// envKeys are the config keys environment variables may override.
var envKeys = []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyIdleAfter}

// envName maps a config key to its environment variable, for example
// automation.idle_after to LEADBOARD_AUTOMATION_IDLE_AFTER.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend    string           `yaml:"backend"`
	DataDir    string           `yaml:"data_dir,omitempty"`
	LogLevel   string           `yaml:"log_level"`
	Automation automationConfig `yaml:"automation"`
}

type automationConfig struct {
	IdleAfter string `yaml:"idle_after"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyIdleAfter, leads.DefaultIdleAfter)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	for _, key := range envKeys {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:  defaultBackend,
		DataDir:  dataDir,
		LogLevel: defaultLogLevel,
		Automation: automationConfig{
			IdleAfter: leads.DefaultIdleAfter.String(),
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// configPath returns the config.yaml location inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
