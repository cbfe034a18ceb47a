// Package assist turns task data into prompts for a text-generation model and
// normalizes the replies.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"taskmind/internal/task"
)

const NoPendingSummary = "No pending tasks to summarize."

// Completer is a single blocking prompt-to-text round trip.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PendingSource supplies the tasks waiting to be summarized.
type PendingSource interface {
	Pending(ctx context.Context) []task.Task
}

type Op string

const (
	OpSummarize    Op = "summarize"
	OpPriority     Op = "suggest_priority"
	OpAutocomplete Op = "autocomplete_description"
)

// AIServiceError wraps any failure of the model call. Callers report it
// generically; Err is for server-side logs only.
type AIServiceError struct {
	Op  Op
	Err error
}

func (e *AIServiceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("ai %s failed: %v", e.Op, e.Err)
}

func (e *AIServiceError) Unwrap() error { return e.Err }

var errEmptyCompletion = errors.New("empty completion")

type Proxy struct {
	completer Completer
	tasks     PendingSource
	logger    *slog.Logger
}

func NewProxy(completer Completer, tasks PendingSource, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Proxy{completer: completer, tasks: tasks, logger: logger}
}

func (p *Proxy) SummarizePending(ctx context.Context) (string, error) {
	pending := p.tasks.Pending(ctx)
	if len(pending) == 0 {
		return NoPendingSummary, nil
	}
	text, err := p.complete(ctx, OpSummarize, summaryPrompt(pending))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (p *Proxy) SuggestPriority(ctx context.Context, description string) (task.Priority, error) {
	description, err := task.RequireText("description", description, "Description is required to suggest priority.")
	if err != nil {
		return "", err
	}
	text, err := p.complete(ctx, OpPriority, priorityPrompt(description))
	if err != nil {
		return "", err
	}
	priority, ok := task.ParsePriority(strings.ToLower(strings.TrimSpace(text)))
	if !ok {
		p.logger.Debug("unexpected priority reply, using medium", "reply", text)
		return task.PriorityMedium, nil
	}
	return priority, nil
}

func (p *Proxy) AutocompleteDescription(ctx context.Context, title string) (string, error) {
	title, err := task.RequireText("title", title, "Title is required to autocomplete description.")
	if err != nil {
		return "", err
	}
	text, err := p.complete(ctx, OpAutocomplete, autocompletePrompt(title))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// complete returns the reply as the model sent it. Blank replies fail except
// for priority, which falls back to medium.
func (p *Proxy) complete(ctx context.Context, op Op, prompt string) (string, error) {
	if p.completer == nil {
		return "", p.fail(op, errors.New("completer is not configured"))
	}
	text, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return "", p.fail(op, err)
	}
	if strings.TrimSpace(text) == "" && op != OpPriority {
		return "", p.fail(op, errEmptyCompletion)
	}
	return text, nil
}

func (p *Proxy) fail(op Op, err error) error {
	p.logger.Error("ai request failed", "op", string(op), "err", err)
	return &AIServiceError{Op: op, Err: err}
}
