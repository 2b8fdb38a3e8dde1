package model

// Status tracks whether a task is still open. The only transition is
// active to done; there is no way back.
type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
)

var statusLabels = map[Status]string{
	StatusActive: "активна",
	StatusDone:   "выполнена",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the user-facing Russian name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusActive]
}
