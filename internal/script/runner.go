package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
)

// Options tune a run.
type Options struct {
	// Strict stops at the first failing action.
	Strict bool
}

// StepError records an action the session refused.
type StepError struct {
	Step    int    `json:"step"` // 1-based
	Op      Op     `json:"op"`
	Message string `json:"error"`
	err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Step, e.Op, e.Message)
}

func (e *StepError) Unwrap() error { return e.err }

// Report is the outcome of a run.
type Report struct {
	Name  string        `json:"name,omitempty"`
	Tasks []*model.Task `json:"tasks"`
	// Filtered holds the result of the last filter action, if any.
	Filtered []*model.Task `json:"filtered,omitempty"`
	Errors   []*StepError  `json:"errors,omitempty"`
}

// Failed reports whether any action was refused.
func (r *Report) Failed() bool { return len(r.Errors) > 0 }

// WriteJSON writes the report as indented JSON with a trailing newline.
func (r *Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Run replays s through sess. Refused actions are collected in the report;
// with Strict the first one is also returned as the error.
func Run(sess *session.Session, s *Script, opts Options) (*Report, error) {
	rep := &Report{Name: s.Name}
	for i, a := range s.Actions {
		filtered, err := apply(sess, a)
		if filtered != nil {
			rep.Filtered = filtered
		}
		if err != nil {
			se := &StepError{Step: i + 1, Op: a.Op, Message: err.Error(), err: err}
			rep.Errors = append(rep.Errors, se)
			if opts.Strict {
				rep.Tasks = sess.Tasks()
				return rep, se
			}
		}
	}
	rep.Tasks = sess.Tasks()
	return rep, nil
}

// apply runs one action. A filter action returns its (possibly empty) result.
func apply(sess *session.Session, a Action) ([]*model.Task, error) {
	switch a.Op {
	case OpAdd:
		in, err := a.input()
		if err != nil {
			return nil, err
		}
		return nil, sess.Add(in)

	case OpEdit:
		in, err := a.input()
		if err != nil {
			return nil, err
		}
		if a.Index == nil {
			return nil, errors.New("edit needs an index")
		}
		return nil, sess.Edit(*a.Index, in)

	case OpDelete:
		idx := session.NoSelection
		if a.Index != nil {
			idx = *a.Index
		}
		return nil, sess.Delete(idx)

	case OpComplete:
		sess.Complete()
		return nil, nil

	case OpSort:
		if a.By == "description" {
			sess.SortByDescription()
		} else {
			sess.SortByPriority()
		}
		return nil, nil

	case OpFilter:
		keep, err := a.predicate()
		if err != nil {
			return nil, err
		}
		return sess.Filter(keep), nil
	}
	return nil, fmt.Errorf("unknown op %q", a.Op)
}

func (a Action) input() (form.Input, error) {
	p := model.Low
	if a.Priority != "" {
		var err error
		if p, err = model.ParsePriority(a.Priority); err != nil {
			return form.Input{}, err
		}
	}
	return form.Input{
		Description: a.Description,
		Priority:    p,
		Reminder:    a.Reminder,
		DueDate:     a.Due,
	}, nil
}

// predicate builds the filter for a filter action: by priority (HIGH when
// unset), narrowed to reminder tasks when reminder is true, and to a due date
// when due is set.
func (a Action) predicate() (model.Predicate, error) {
	p := model.High
	if a.Priority != "" {
		var err error
		if p, err = model.ParsePriority(a.Priority); err != nil {
			return nil, err
		}
	}
	preds := []model.Predicate{model.WithPriority(p)}
	if a.Reminder {
		preds = append(preds, model.WithReminder)
	}
	if a.Due != "" {
		preds = append(preds, model.DueOn(a.Due))
	}
	return func(t *model.Task) bool {
		for _, keep := range preds {
			if !keep(t) {
				return false
			}
		}
		return true
	}, nil
}
