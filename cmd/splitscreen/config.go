package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/splitscreen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the config file",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the config and report errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(res.Files) == 0 {
			fmt.Fprintln(out, "OK (no config file, using defaults)")
			return nil
		}
		fmt.Fprintf(out, "OK (%s)\n", strings.Join(res.Files, ", "))
		return nil
	},
}

var configPrintDefaults bool

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective config as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.DefaultConfig()
		if !configPrintDefaults {
			res, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configExplainCmd = &cobra.Command{
	Use:       "explain <key>",
	Short:     "Show a key's effective value and where it was set",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Paths(),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return fmt.Errorf("%w (known keys: %s)", err, strings.Join(config.Paths(), ", "))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", args[0], value, config.FormatSource(src))
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			var err error
			if path, err = config.DefaultConfigPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		cfg := config.DefaultConfig()
		if flagPath, _ := cmd.Flags().GetString("config"); flagPath == "" {
			if err := cfg.Save(); err != nil {
				return err
			}
		} else if err := cfg.SaveTo(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configPrintCmd.Flags().BoolVar(&configPrintDefaults, "defaults", false, "Print built-in defaults instead of the effective config")
	configCmd.AddCommand(configInitCmd, configValidateCmd, configPrintCmd, configExplainCmd)
	rootCmd.AddCommand(configCmd)
}
