// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

// Fixed user-facing messages.
const (
	MsgNoTasks    = "No tasks available."
	MsgTaskAdded  = "Task added successfully."
	doneMarker    = "x"
	pendingMarker = " "
)

// FormatTask formats a task line for the list command.
// Format: "[{x| }] {ID} - {DESCRIPTION}\n"
func FormatTask(w io.Writer, task service.Task) {
	marker := pendingMarker
	if task.Completed {
		marker = doneMarker
	}
	fmt.Fprintf(w, "[%s] %d - %s\n", marker, task.ID, normalizeDescription(task.Description))
}

// FormatTasks formats every task in order, or the empty-list message.
// quiet suppresses the empty-list message only.
func FormatTasks(w io.Writer, tasks []service.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, MsgNoTasks)
		}
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatAdded prints the add confirmation.
func FormatAdded(w io.Writer) {
	fmt.Fprintln(w, MsgTaskAdded)
}

// FormatCompleted prints the complete confirmation.
func FormatCompleted(w io.Writer, id int) {
	fmt.Fprintf(w, "Task %d marked as completed.\n", id)
}

// FormatDeleted prints the delete confirmation.
func FormatDeleted(w io.Writer, id int) {
	fmt.Fprintf(w, "Task %d deleted successfully.\n", id)
}

// FormatNotFound prints the notice for an unknown task ID.
func FormatNotFound(w io.Writer, id int) {
	fmt.Fprintf(w, "Task with ID %d not found.\n", id)
}

// normalizeDescription keeps each task on one line.
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r\n", " ")
	desc = strings.ReplaceAll(desc, "\r", " ")
	return strings.ReplaceAll(desc, "\n", " ")
}
