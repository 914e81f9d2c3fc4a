package model

import (
	"cmp"
	"slices"
	"strings"
)

// Order is a three-way comparison over tasks in the style of cmp.Compare.
type Order func(a, b *Task) int

// Predicate selects tasks for Filter.
type Predicate func(t *Task) bool

// DefaultOrder sorts by priority ascending, then description, then tasks
// with a reminder before tasks without one.
func DefaultOrder(a, b *Task) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	if c := strings.Compare(a.Description, b.Description); c != 0 {
		return c
	}
	return compareReminder(a.ReminderSet, b.ReminderSet)
}

// ByDescription sorts by description alone.
func ByDescription(a, b *Task) int {
	return strings.Compare(a.Description, b.Description)
}

// reminder set sorts first
func compareReminder(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// WithPriority matches tasks of exactly priority p.
func WithPriority(p Priority) Predicate {
	return func(t *Task) bool { return t.Priority == p }
}

// WithReminder matches tasks that have the reminder flag set.
func WithReminder(t *Task) bool { return t.ReminderSet }

// DueOn matches tasks whose due date string equals date.
func DueOn(date string) Predicate {
	return func(t *Task) bool { return t.DueDate != "" && t.DueDate == date }
}

// List is an in-memory ordered collection of tasks. Add, DeleteAt and EditAt
// re-apply DefaultOrder; out-of-range indices are ignored, not reported.
// A List is not safe for concurrent use.
type List struct {
	tasks []*Task
}

func NewList() *List { return &List{} }

func (l *List) Len() int { return len(l.tasks) }

// All returns a snapshot of the current order, never nil. Treat the tasks
// as read-only.
func (l *List) All() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// At returns the task at index i, or nil when i is out of range.
func (l *List) At(i int) *Task {
	if !l.inBounds(i) {
		return nil
	}
	return l.tasks[i]
}

func (l *List) Add(description string, priority Priority, reminderSet bool, dueDate string) {
	l.tasks = append(l.tasks, NewTask(description, priority, reminderSet, dueDate))
	l.sortDefault()
}

func (l *List) DeleteAt(i int) {
	if !l.inBounds(i) {
		return
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	l.sortDefault()
}

func (l *List) EditAt(i int, description string, priority Priority, reminderSet bool, dueDate string) {
	if !l.inBounds(i) {
		return
	}
	l.tasks[i].Edit(description, priority, reminderSet, dueDate)
	l.sortDefault()
}

// CompleteFirst removes whichever task currently sorts first. Completion has
// no separate status: a completed task is gone.
func (l *List) CompleteFirst() {
	if len(l.tasks) == 0 {
		return
	}
	l.tasks = slices.Delete(l.tasks, 0, 1)
}

// SortBy reorders the list with a caller-supplied ordering. The order holds
// until the next Add, DeleteAt or EditAt.
func (l *List) SortBy(order Order) {
	slices.SortStableFunc(l.tasks, func(a, b *Task) int { return order(a, b) })
}

// Filter returns the matching tasks in list order. The list is not modified.
func (l *List) Filter(keep Predicate) []*Task {
	out := make([]*Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (l *List) sortDefault() { l.SortBy(DefaultOrder) }

func (l *List) inBounds(i int) bool { return i >= 0 && i < len(l.tasks) }
