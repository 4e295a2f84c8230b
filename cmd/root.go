package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/netrunnerdb/cardlint/internal/config"
	"github.com/netrunnerdb/cardlint/internal/logging"
)

var (
	verbosity  int
	basePath   string
	packPath   string
	schemaPath string
	configPath string
	logFile    string

	// cfg is the loaded config file, available to every subcommand
	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardlint",
	Short: "Tool for validating a card catalog data repository",
	Long: `Cardlint validates the JSON data repository of a trading card game catalog.
It checks that every file is well formed, conforms to its JSON schema and is
consistent with the rest of the catalog, and reports every problem in one run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		level := cfg.Verbosity
		if cmd.Flags().Changed("verbose") {
			level = verbosity
		}
		file := cfg.LogFile
		if cmd.Flags().Changed("log-file") {
			file = logFile
		}
		return logging.Setup(cmd.OutOrStdout(), level, color.NoColor, file)
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "verbose mode (repeat for more output)")
	flags.StringVarP(&basePath, "base_path", "b", "", "root directory of JSON repo (default: config base_path, else current directory)")
	flags.StringVarP(&packPath, "pack_path", "p", "", "pack directory of JSON repo (default: BASE_PATH/pack/, or BASE_PATH/set/ with --legacy)")
	flags.StringVarP(&schemaPath, "schema_path", "c", "", "schema directory of JSON repo (default: BASE_PATH/schema/)")
	flags.StringVar(&configPath, "config", config.GetConfigFilePath(), "config file")
	flags.StringVar(&logFile, "log-file", "", "also write a debug log to this file")

	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(formatCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(showCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// resolvePaths applies flag > config > default precedence to the repository
// paths.
func resolvePaths(legacy bool) (base, pack, schema string, err error) {
	base = basePath
	if base == "" {
		if base, err = cfg.ResolveBasePath(); err != nil {
			return "", "", "", err
		}
	}
	pack = packPath
	if pack == "" {
		pack = cfg.ResolvePackPath(base, legacy)
	}
	schema = schemaPath
	if schema == "" {
		schema = cfg.ResolveSchemaPath(base)
	}
	return base, pack, schema, nil
}
