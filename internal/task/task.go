package task

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

// Collection is the full ordered set of tasks, in insertion order.
type Collection struct {
	Tasks []Task `json:"tasks"`
}

func (c Collection) Clone() Collection {
	out := make([]Task, len(c.Tasks))
	copy(out, c.Tasks)
	return Collection{Tasks: out}
}

func (c Collection) IndexOf(id string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

var validStatus = map[Status]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

var validPriority = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// legacyInProgress is the spelling the original browser client sends.
const legacyInProgress = "in progress"

// ParseStatus accepts exactly the three status values plus the legacy
// "in progress" spelling. Case and surrounding space are significant.
func ParseStatus(raw string) (Status, bool) {
	if raw == legacyInProgress {
		return StatusInProgress, true
	}
	st := Status(raw)
	if _, ok := validStatus[st]; !ok {
		return "", false
	}
	return st, true
}

// ParsePriority accepts exactly low, medium or high.
func ParsePriority(raw string) (Priority, bool) {
	p := Priority(raw)
	if _, ok := validPriority[p]; !ok {
		return "", false
	}
	return p, true
}

// StatusOrDefault coerces anything that is not a known status to pending.
func StatusOrDefault(raw string) Status {
	if st, ok := ParseStatus(raw); ok {
		return st
	}
	return StatusPending
}

// PriorityOrDefault coerces anything that is not a known priority to medium.
func PriorityOrDefault(raw string) Priority {
	if p, ok := ParsePriority(raw); ok {
		return p
	}
	return PriorityMedium
}
