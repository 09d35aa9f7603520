package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/quarry-dev/quarry/internal/template/model"
)

// Output styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)

	statusStyles = map[model.GeneratedFileStatus]lipgloss.Style{
		model.StatusCreated:     successStyle,
		model.StatusOverwritten: warnStyle,
		model.StatusAppended:    warnStyle,
		model.StatusSkipped:     dimStyle,
		model.StatusIdentical:   dimStyle,
	}
)

// styled applies a style unless colored output is disabled.
func styled(style lipgloss.Style, text string) string {
	if globalNoColor {
		return text
	}
	return style.Render(text)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", styled(successStyle, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", styled(warnStyle, "⚠"), msg)
}

// printErrorMsg prints an error message to stderr
func printErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styled(errorStyle, "✗"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Printf("\n%s\n", styled(headerStyle, title))
}

// printGeneratedFiles prints the per-file generation report.
func printGeneratedFiles(files []model.GeneratedFile) {
	if globalQuiet {
		return
	}
	for _, f := range files {
		style, ok := statusStyles[f.Status]
		if !ok {
			style = dimStyle
		}
		fmt.Printf("  %s %s\n", styled(style, fmt.Sprintf("%-11s", f.Status)), f.Path)
	}
}

// summarize counts outcomes for the closing line.
func summarize(files []model.GeneratedFile) string {
	counts := map[model.GeneratedFileStatus]int{}
	for _, f := range files {
		counts[f.Status]++
	}

	summary := fmt.Sprintf("%d file(s)", len(files))
	for _, status := range []model.GeneratedFileStatus{
		model.StatusCreated,
		model.StatusOverwritten,
		model.StatusAppended,
		model.StatusSkipped,
		model.StatusIdentical,
	} {
		if n := counts[status]; n > 0 {
			summary += fmt.Sprintf(", %d %s", n, status)
		}
	}
	return summary
}
