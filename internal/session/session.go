// Package session is the shell between a front end and the task list: it
// validates form input, calls the list, and logs what happened. Front ends
// hold no task logic of their own.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
)

// ErrNoSelection is returned by Delete when the front end has no selected row.
var ErrNoSelection = errors.New("select a task to delete")

// NoSelection is the index a front end passes when nothing is selected.
const NoSelection = -1

// Session owns one task list for the lifetime of the process.
type Session struct {
	user   string
	list   *model.List
	logger *log.Logger
}

// New starts an empty session for user. A nil logger discards output.
func New(user string, logger *log.Logger) *Session {
	if strings.TrimSpace(user) == "" {
		user = "User"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		user:   user,
		list:   model.NewList(),
		logger: logger,
	}
}

func (s *Session) User() string { return s.user }

// Greeting is the title line shown above the list.
func (s *Session) Greeting() string {
	return fmt.Sprintf("To-Do List - Welcome, %s!", s.user)
}

// Add validates in and appends it; the list re-sorts itself. The description
// is stored as typed, surrounding spaces included.
func (s *Session) Add(in form.Input) error {
	if err := in.Validate(); err != nil {
		s.logger.Warn("add rejected", "err", err)
		return err
	}
	s.list.Add(in.Description, in.Priority, in.Reminder, in.DueDate)
	s.logger.Info("task added", "description", in.Description, "priority", in.Priority, "tasks", s.list.Len())
	return nil
}

// Edit validates in and replaces the task at index. An index outside the
// list is ignored.
func (s *Session) Edit(index int, in form.Input) error {
	if err := in.Validate(); err != nil {
		s.logger.Warn("edit rejected", "index", index, "err", err)
		return err
	}
	if s.list.At(index) == nil {
		s.logger.Debug("edit ignored", "index", index, "tasks", s.list.Len())
		return nil
	}
	s.list.EditAt(index, in.Description, in.Priority, in.Reminder, in.DueDate)
	s.logger.Info("task edited", "index", index, "description", in.Description)
	return nil
}

// Delete removes the task at index. NoSelection (or any negative index) is
// refused; an index past the end is ignored.
func (s *Session) Delete(index int) error {
	if index < 0 {
		s.logger.Warn("delete rejected", "err", ErrNoSelection)
		return ErrNoSelection
	}
	before := s.list.Len()
	s.list.DeleteAt(index)
	if s.list.Len() == before {
		s.logger.Debug("delete ignored", "index", index, "tasks", before)
		return nil
	}
	s.logger.Info("task deleted", "index", index, "tasks", s.list.Len())
	return nil
}

// Complete marks the first task in the current order complete by removing it.
// It returns the removed task, or nil when the list was empty.
func (s *Session) Complete() *model.Task {
	first := s.list.At(0)
	s.list.CompleteFirst()
	if first == nil {
		s.logger.Debug("complete ignored, list empty")
		return nil
	}
	s.logger.Info("task completed", "description", first.Description, "tasks", s.list.Len())
	return first
}

// Sort applies order to the list until the next add, edit or delete.
func (s *Session) Sort(order model.Order) {
	s.list.SortBy(order)
	s.logger.Debug("tasks sorted")
}

// SortByDescription is the "Sort Tasks" action.
func (s *Session) SortByDescription() { s.Sort(model.ByDescription) }

// SortByPriority restores the default order.
func (s *Session) SortByPriority() { s.Sort(model.DefaultOrder) }

// Filter returns the matching tasks without touching the list.
func (s *Session) Filter(keep model.Predicate) []*model.Task {
	out := s.list.Filter(keep)
	s.logger.Debug("tasks filtered", "matched", len(out), "tasks", s.list.Len())
	return out
}

// FilterHigh is the "Filter Tasks" action: HIGH priority only.
func (s *Session) FilterHigh() []*model.Task { return s.Filter(model.WithPriority(model.High)) }

// Tasks returns the current order. Treat it as read-only.
func (s *Session) Tasks() []*model.Task { return s.list.All() }

// Task returns the task at index for prefilling an edit form, or nil.
func (s *Session) Task(index int) *model.Task { return s.list.At(index) }

func (s *Session) Len() int { return s.list.Len() }

// Counts reports how many tasks sit at each priority.
func (s *Session) Counts() map[model.Priority]int {
	counts := make(map[model.Priority]int, len(model.Priorities))
	for _, t := range s.list.All() {
		counts[t.Priority]++
	}
	return counts
}
