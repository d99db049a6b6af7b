package client

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// ConfigCmd creates the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage client settings",
		Long:  "Show the effective settings or store defaults in the global config (~/.config/digest/config.json).",
	}

	cmd.AddCommand(ConfigShowCmd())
	cmd.AddCommand(ConfigSetURLCmd())
	cmd.AddCommand(ConfigSetSampleCmd())
	cmd.AddCommand(ConfigResetCmd())

	return cmd
}

// ConfigShowCmd creates the config show command
func ConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Long:  "Display the resolved API URL and data source, and where each value came from.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ResolveSettings(cmd)
			if err != nil {
				return err
			}
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runConfigShow(cmd.OutOrStdout(), settings, outputJSON)
		},
	}
}

// ConfigSetURLCmd creates the config set-url command
func ConfigSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Store the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSetURL(cmd.OutOrStdout(), args[0])
		},
	}
}

// ConfigSetSampleCmd creates the config set-sample command
func ConfigSetSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-sample <true|false>",
		Short: "Store whether to use sample data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", args[0])
			}
			return runConfigSetSample(cmd.OutOrStdout(), v)
		},
	}
}

// ConfigResetCmd creates the config reset command
func ConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := DeleteGlobalConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset")
			return nil
		},
	}
}

func runConfigShow(w io.Writer, s Settings, outputJSON bool) error {
	if outputJSON {
		return writeJSON(w, s)
	}

	fmt.Fprintf(w, "Mode: %s\n", s.Mode())
	fmt.Fprintf(w, "API URL: %s (%s)\n", s.APIURL, s.APIURLSource)
	fmt.Fprintf(w, "Sample data: %t (%s)\n", s.UseSampleData, s.UseSampleDataSource)
	return nil
}

func loadOrEmptyConfig() (*GlobalConfig, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &GlobalConfig{}
	}
	return cfg, nil
}

func runConfigSetURL(w io.Writer, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL %q (expected http(s)://host/...)", raw)
	}

	cfg, err := loadOrEmptyConfig()
	if err != nil {
		return err
	}
	cfg.APIURL = raw

	if err := SaveGlobalConfig(cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintf(w, "API URL set to %s\n", raw)
	return nil
}

func runConfigSetSample(w io.Writer, useSample bool) error {
	cfg, err := loadOrEmptyConfig()
	if err != nil {
		return err
	}
	cfg.UseSampleData = &useSample

	if err := SaveGlobalConfig(cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintf(w, "Sample data %s\n", map[bool]string{true: "enabled", false: "disabled"}[useSample])
	return nil
}
