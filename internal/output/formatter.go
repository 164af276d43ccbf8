package output

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorProjectName colors a project name
func ColorProjectName(name string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Render(name)
}

// ColorBranchName colors a branch name based on whether it's checked out
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Render(branchName + " (current)")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorModified colors a modified path
func ColorModified(path string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render("M " + path)
}

// ColorUntracked colors an untracked path
func ColorUntracked(path string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render("? " + path)
}

// ColorClean renders the marker for a project without changes
func ColorClean(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}
