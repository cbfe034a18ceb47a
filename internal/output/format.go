// Package output renders tasks for the terminal client.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskmind/internal/task"
)

const Separator = "------------"

// FormatTasks writes tasks newest first. Storage order is insertion order, so
// the slice is walked backwards.
func FormatTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i := len(tasks) - 1; i >= 0; i-- {
		FormatTask(w, tasks[i])
	}
}

// FormatTask writes one task block:
//
//	{TITLE}
//	  {DESCRIPTION}
//	  Status: {STATUS}  Priority: {PRIORITY}  [{ID}]
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, singleLine(t.Title, "(untitled)"))
	fmt.Fprintf(w, "  %s\n", singleLine(t.Description, "(no description)"))
	fmt.Fprintf(w, "  Status: %s  Priority: %s  [%s]\n", t.Status, t.Priority, t.ID)
}

func FormatSummary(w io.Writer, summary string) {
	fmt.Fprintln(w, strings.TrimRight(summary, "\n"))
}

func singleLine(s, empty string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return empty
	}
	return s
}
