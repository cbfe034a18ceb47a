package task

import "strings"

// CreateInput is the raw create request before coercion.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// Draft is a validated CreateInput; it only lacks an id.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

func (d Draft) WithID(id string) Task {
	return Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
	}
}

func ValidateCreate(in CreateInput) (Draft, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return Draft{}, &ValidationError{Field: "title", Message: "Title and description are required."}
	}
	if description == "" {
		return Draft{}, &ValidationError{Field: "description", Message: "Title and description are required."}
	}
	return Draft{
		Title:       title,
		Description: description,
		Status:      StatusOrDefault(in.Status),
		Priority:    PriorityOrDefault(in.Priority),
	}, nil
}

func ValidateStatusUpdate(raw string) (Status, error) {
	st, ok := ParseStatus(raw)
	if !ok {
		return "", &ValidationError{Field: "status", Message: "A valid status is required."}
	}
	return st, nil
}

func RequireText(field, value, message string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &ValidationError{Field: field, Message: message}
	}
	return v, nil
}
