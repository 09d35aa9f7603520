package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagOutput     = "output"
	FlagVar        = "var"
	FlagOnConflict = "on-conflict"
	FlagDryRun     = "dry-run"
	FlagSkipHooks  = "skip-hooks"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"

	// Flag descriptions
	DescOutput     = "Output directory (defaults to current directory)"
	DescVar        = "Set a bundle variable as name=value (repeatable)"
	DescOnConflict = "Conflict policy for existing files: prompt, overwrite, skip, or append"
	DescDryRun     = "Render in memory and report, without touching the filesystem"
	DescSkipHooks  = "Do not run the bundle's pre/post generation hooks"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress non-error output"
	DescDebug      = "Enable debug logging"
)
