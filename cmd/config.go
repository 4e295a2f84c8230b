package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/netrunnerdb/cardlint/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cardlint config file",
	Long:  `Commands for creating and inspecting the cardlint config file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.CreateDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Config file initialized at:", configPath)
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", configPath)
		return toml.NewEncoder(out).Encode(cfg)
	},
}

// configSetBaseCmd represents the config set-base command
var configSetBaseCmd = &cobra.Command{
	Use:   "set-base [path]",
	Short: "Set the default repository path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetBasePath(configPath, args[0]); err != nil {
			return fmt.Errorf("error setting base path: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Base path set to: %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetBaseCmd)
}
