package model

import "strings"

// Task is a single to-do entry. It has no identity of its own: callers
// address it by its position in a List.
type Task struct {
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	ReminderSet bool     `json:"reminder_set"`
	DueDate     string   `json:"due_date,omitempty"`
}

// NewTask builds a task. Input is taken as-is; validation belongs to the caller.
func NewTask(description string, priority Priority, reminderSet bool, dueDate string) *Task {
	return &Task{
		Description: description,
		Priority:    priority,
		ReminderSet: reminderSet,
		DueDate:     dueDate,
	}
}

// Edit replaces every field in place.
func (t *Task) Edit(description string, priority Priority, reminderSet bool, dueDate string) {
	t.Description = description
	t.Priority = priority
	t.ReminderSet = reminderSet
	t.DueDate = dueDate
}

// String is the canonical display line, e.g.
// "Task: Buy milk | Priority: HIGH | Reminder Set | Due Date: 01/12/2024".
func (t *Task) String() string {
	var b strings.Builder
	b.WriteString("Task: ")
	b.WriteString(t.Description)
	b.WriteString(" | Priority: ")
	b.WriteString(t.Priority.String())
	if t.ReminderSet {
		b.WriteString(" | Reminder Set")
	}
	if t.DueDate != "" {
		b.WriteString(" | Due Date: ")
		b.WriteString(t.DueDate)
	}
	return b.String()
}
