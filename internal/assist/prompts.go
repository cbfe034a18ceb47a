package assist

import (
	"fmt"
	"strings"

	"taskmind/internal/task"
)

func summaryPrompt(pending []task.Task) string {
	var b strings.Builder
	for i, t := range pending {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(t.Title)
		b.WriteString(": ")
		b.WriteString(t.Description)
	}
	return "Please provide a brief, insightful summary of the following pending tasks in markdown format. " +
		"Group them by priority or common themes where possible, using markdown headings and bullet points:\n\n" +
		b.String()
}

func priorityPrompt(description string) string {
	return fmt.Sprintf("Given the following task description, suggest a priority (high, medium, or low). "+
		"Respond with only the suggested priority word (e.g., \"high\", \"medium\", \"low\").\n\nDescription: %q", description)
}

func autocompletePrompt(title string) string {
	return fmt.Sprintf("Generate a concise and relevant description for a task with the title: %q. "+
		"The description should be a single sentence and in the language the title was provided.", title)
}
