package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-dev/quarry/internal/app"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <bundle-dir>",
	Short: "Generate project files from a template bundle",
	Long: `Render a template bundle into the output directory.

Variables declared in the bundle's bundle.yaml are resolved from
defaults, --var flags, and interactive prompts, in that order. When an
output file already exists with different content, the conflict policy
decides what happens; the default policy prompts per file.

Examples:
  quarry generate ./bundles/flutter-feature
  quarry generate ./bundles/api -o ./out --var name=shop --var models=user,order
  quarry generate ./bundles/api --on-conflict skip --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

// Generate command flags
var (
	generateOutput     string
	generateVars       []string
	generateOnConflict string
	generateDryRun     bool
	generateSkipHooks  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, FlagOutput, "o", "", DescOutput)
	generateCmd.Flags().StringArrayVar(&generateVars, FlagVar, nil, DescVar)
	generateCmd.Flags().StringVar(&generateOnConflict, FlagOnConflict, "prompt", DescOnConflict)
	generateCmd.Flags().BoolVar(&generateDryRun, FlagDryRun, false, DescDryRun)
	generateCmd.Flags().BoolVar(&generateSkipHooks, FlagSkipHooks, false, DescSkipHooks)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := app.Generate(cmd.Context(), app.GenerateOptions{
		BundleDir:        args[0],
		OutputDir:        generateOutput,
		VarFlags:         generateVars,
		OnConflict:       generateOnConflict,
		DryRun:           generateDryRun,
		SkipHooks:        generateSkipHooks,
		VarPrompter:      surveyVarPrompter{},
		ConflictPrompter: surveyConflictPrompter{},
	})
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("%s v%s", result.Bundle.Config.Name, result.Bundle.Config.Version))
	printGeneratedFiles(result.Files)
	if result.DryRun {
		printWarning("dry run: no files were written")
	}
	printSuccess(summarize(result.Files))
	return nil
}
