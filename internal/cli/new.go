package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-dev/quarry/internal/app"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <bundle-dir>",
	Short: "Scaffold a starter template bundle",
	Long: `Create a new bundle directory with a starter bundle.yaml and
example template files.

Examples:
  quarry new ./bundles/my-feature
  quarry new ./bundles/my-feature --type default --force`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

// New command flags
var (
	newType  string
	newForce bool
)

func init() {
	newCmd.Flags().StringVar(&newType, "type", "default", "Scaffold type")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite files in a non-empty target directory")
}

func runNew(cmd *cobra.Command, args []string) error {
	result, err := app.NewBundle(cmd.Context(), app.NewBundleOptions{
		Path:  args[0],
		Type:  newType,
		Force: newForce,
	})
	if err != nil {
		return err
	}

	for _, f := range result.Files {
		printInfo("  created " + f)
	}
	printSuccess(fmt.Sprintf("bundle scaffolded at %s (%d files)", result.Path, result.FilesCreated))
	return nil
}
