// =============================================================================
// Australian POS Data Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All subcommands are
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (posgen)
//   ├── generateCmd (posgen generate)
//   ├── streamCmd   (posgen stream)
//   ├── abnCmd      (posgen abn validate|generate)
//   ├── gstCmd      (posgen gst)
//   └── versionCmd  (posgen version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/aus-pos-datagen/internal/config"
	"github.com/ginjaninja78/aus-pos-datagen/internal/logging"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "posgen",
	Short: "Australian POS Data Generator - Deterministic synthetic retail data",
	Long: `Australian POS Data Generator produces synthetic point-of-sale datasets
for Australian retail scenarios: businesses with valid ABNs, customers,
GST-reconciled transactions and returns.

Generation is fully deterministic: the same seed and configuration always
produce byte-for-byte identical data, which makes the output suitable for
repeatable pipeline tests and demo environments.

Example Usage:
  posgen generate                      # Generate using config.yaml (or defaults)
  posgen generate --seed 7 --formats csv,json
  posgen stream --rate 5 --format console
  posgen abn validate "51 824 753 556"
  posgen gst 16.50`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file from --config. Load applies
// defaults and validates; a missing file is not an error.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() *zap.Logger {
	return logging.New(verbose)
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
