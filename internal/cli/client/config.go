package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cloo-solutions/digest/internal/config"
	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/spf13/cobra"
)

// GlobalConfig is the user-level settings file (config.json).
// UseSampleData is a pointer so "unset" falls through the cascade.
type GlobalConfig struct {
	APIURL        string `json:"api_url,omitempty"`
	UseSampleData *bool  `json:"use_sample_data,omitempty"`
}

var (
	getConfigDirFunc  = defaultGetConfigDir
	getConfigPathFunc = defaultGetConfigPath
)

func defaultGetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "digest"), nil
}

func defaultGetConfigPath() (string, error) {
	configDir, err := getConfigDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetConfigPath returns the full path to the config.json file
func GetConfigPath() (string, error) {
	return getConfigPathFunc()
}

// LoadGlobalConfig reads config.json. A missing file yields nil, nil.
func LoadGlobalConfig() (*GlobalConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GlobalConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveGlobalConfig writes config.json with 0600 permissions
func SaveGlobalConfig(config *GlobalConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	configDir, err := getConfigDirFunc()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DeleteGlobalConfig removes config.json; a missing file is not an error.
func DeleteGlobalConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}

	return nil
}

// SettingSource records where a resolved value came from
type SettingSource string

const (
	SourceFlag         SettingSource = "flag"
	SourceEnv          SettingSource = "env"
	SourceGlobalConfig SettingSource = "global_config"
	SourceDefault      SettingSource = "default"
)

// Settings is the outcome of the flag → env → config file → default
// cascade.
type Settings struct {
	APIURL              string        `json:"api_url"`
	APIURLSource        SettingSource `json:"api_url_source"`
	UseSampleData       bool          `json:"use_sample_data"`
	UseSampleDataSource SettingSource `json:"use_sample_data_source"`
}

// Mode reports the facade mode these settings select.
func (s Settings) Mode() feed.Mode {
	if s.UseSampleData {
		return feed.ModeSample
	}
	return feed.ModeLive
}

// ResolveSettings applies the cascade. cmd may be nil, which skips flags.
func ResolveSettings(cmd *cobra.Command) (Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return Settings{}, err
	}
	return resolveSettings(cmd, cfg)
}

// resolveSettings takes the env step from cfg, which config.Load fills
// from DIGEST_* variables and .env.
func resolveSettings(cmd *cobra.Command, cfg *config.Config) (Settings, error) {
	s := Settings{
		APIURL:              feed.DefaultBaseURL,
		APIURLSource:        SourceDefault,
		UseSampleDataSource: SourceDefault,
	}
	urlSet, sampleSet := false, false

	if cmd != nil {
		if f := cmd.Flags().Lookup("api-url"); f != nil && f.Changed && f.Value.String() != "" {
			s.APIURL, s.APIURLSource, urlSet = f.Value.String(), SourceFlag, true
		}
		if f := cmd.Flags().Lookup("sample"); f != nil && f.Changed {
			v, err := strconv.ParseBool(f.Value.String())
			if err != nil {
				return s, fmt.Errorf("invalid --sample value: %w", err)
			}
			s.UseSampleData, s.UseSampleDataSource, sampleSet = v, SourceFlag, true
		}
	}

	if !urlSet && cfg.APIURL != "" {
		s.APIURL, s.APIURLSource, urlSet = cfg.APIURL, SourceEnv, true
	}
	if !sampleSet && cfg.UseSampleData != nil {
		s.UseSampleData, s.UseSampleDataSource, sampleSet = *cfg.UseSampleData, SourceEnv, true
	}

	if !urlSet || !sampleSet {
		globalConfig, err := LoadGlobalConfig()
		if err != nil {
			return s, err
		}
		if globalConfig != nil {
			if !urlSet && globalConfig.APIURL != "" {
				s.APIURL, s.APIURLSource = globalConfig.APIURL, SourceGlobalConfig
			}
			if !sampleSet && globalConfig.UseSampleData != nil {
				s.UseSampleData, s.UseSampleDataSource = *globalConfig.UseSampleData, SourceGlobalConfig
			}
		}
	}

	return s, nil
}
