// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tdo/internal/service"
	"tdo/internal/state"
)

// barWidth is the character width of progress bars.
const barWidth = 20

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle  = lipgloss.NewStyle().Faint(true)

	priorityStyles = map[service.Priority]lipgloss.Style{
		service.PriorityHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		service.PriorityLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [x] {TITLE}" plus a priority tag for non-medium
// priorities and the due date when set.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := "[ ]"
	if task.Completed {
		mark = doneStyle.Render("[x]")
	}

	line := fmt.Sprintf("%4d  %s %s", num, mark, normalizeTitle(task.Title))

	if style, ok := priorityStyles[task.Priority]; ok {
		line += "  " + style.Render("["+string(task.Priority)+"]")
	}
	if task.DueDate != nil {
		line += "  " + dimStyle.Render("due "+task.DueDate.Format("2006-01-02"))
	}

	fmt.Fprintln(w, line)
}

// FormatTaskDetail formats a single task with its description, used after
// mutations that return the updated record.
func FormatTaskDetail(w io.Writer, task service.Task) {
	FormatTask(w, int(task.ID), task)
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(w, "      %s\n", dimStyle.Render(task.Description))
	}
}

// FormatUser formats the identity derived from the session.
func FormatUser(w io.Writer, u service.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	if u.ID != "" {
		fmt.Fprintf(w, "user id: %s\n", u.ID)
	}
}

// FormatStats formats the overall completion summary.
func FormatStats(w io.Writer, s state.Stats) {
	fmt.Fprintf(w, "%d tasks: %d active, %d completed\n", s.Total, s.Active, s.Completed)
	FormatBar(w, "overall", s)
}

// FormatBar formats one labeled progress bar.
// Format: "{LABEL:<8} [{BAR}] {PCT:>3}%  ({C}/{N})"
func FormatBar(w io.Writer, label string, s state.Stats) {
	filled := 0
	if s.Total > 0 {
		filled = barWidth * s.Completed / s.Total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Fprintf(w, "%-8s [%s] %3d%%  (%d/%d)\n", label, bar, s.Percent, s.Completed, s.Total)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
