// ABOUTME: Styled terminal notifications for CLI command results
// ABOUTME: Small lipgloss wrappers so every command reports the same way

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Successf prints a green checkmark line.
func Successf(format string, a ...interface{}) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, a...)))
}

// Warnf prints an amber warning line.
func Warnf(format string, a ...interface{}) {
	fmt.Println(warnStyle.Render("! " + fmt.Sprintf(format, a...)))
}

// Errorf prints a red error line.
func Errorf(format string, a ...interface{}) {
	fmt.Println(errorStyle.Render("✗ " + fmt.Sprintf(format, a...)))
}

// Faintf prints a de-emphasized detail line.
func Faintf(format string, a ...interface{}) {
	fmt.Println(faintStyle.Render("  " + fmt.Sprintf(format, a...)))
}
