package model

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists all valid values in ascending order of urgency.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var priorityLabels = map[Priority]string{
	PriorityLow:    "низкий",
	PriorityMedium: "средний",
	PriorityHigh:   "высокий",
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// Label returns the user-facing Russian name of the priority.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[PriorityLow]
}

// CoercePriority maps untrusted input onto the closed set, falling back to "low".
func CoercePriority(raw string) Priority {
	if p := Priority(raw); p.Valid() {
		return p
	}
	return PriorityLow
}
