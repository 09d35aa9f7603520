package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quarry-dev/quarry/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Project scaffolding from template bundles",
	Long: `quarry generates project files from template bundles.

A bundle is a directory with a bundle.yaml describing its variables and
hooks, and a __bundle__/ directory holding template files. Template
paths and contents may contain substitution tokens, case transforms,
loop sections, and partial inclusions.

Use "quarry generate <bundle-dir>" to render a bundle into the current
directory, and "quarry vars <bundle-dir>" to inspect its variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErrorMsg(err.Error())
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(versionCmd)
}
