package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quarry-dev/quarry/internal/template/bundle"
	"github.com/quarry-dev/quarry/internal/template/model"
)

// varsCmd represents the vars command
var varsCmd = &cobra.Command{
	Use:   "vars <bundle-dir>",
	Short: "List the variables a bundle declares",
	Long: `Show every variable declared in a bundle's bundle.yaml with its
type, default, and description.

Examples:
  quarry vars ./bundles/flutter-feature`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

func runVars(cmd *cobra.Command, args []string) error {
	loaded, err := bundle.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("%s v%s", loaded.Config.Name, loaded.Config.Version))
	if loaded.Config.Description != "" {
		printInfo(loaded.Config.Description)
	}

	if len(loaded.Config.Vars) == 0 {
		printInfo("no variables declared")
		return nil
	}

	names := make([]string, 0, len(loaded.Config.Vars))
	for name := range loaded.Config.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := loaded.Config.Vars[name]
		varType := def.Type
		if varType == "" {
			varType = model.VarTypeString
		}

		line := fmt.Sprintf("  %s (%s)", name, varType)
		if def.Default != nil {
			line += fmt.Sprintf(" [default: %v]", def.Default)
		}
		if def.Description != "" {
			line += " - " + def.Description
		}
		printInfo(line)
	}
	return nil
}
