package model

import (
	"fmt"
	"strings"
)

// Priority ranks a task. Declaration order is the sort order: LOW < MEDIUM < HIGH.
type Priority int

const (
	Low Priority = iota
	Medium
	High
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{Low, Medium, High}

func (p Priority) String() string {
	switch p {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Next cycles LOW -> MEDIUM -> HIGH -> LOW.
func (p Priority) Next() Priority { return (p + 1) % Priority(len(Priorities)) }

// Prev cycles the other way.
func (p Priority) Prev() Priority {
	return (p + Priority(len(Priorities)) - 1) % Priority(len(Priorities))
}

// ParsePriority accepts the display names in any case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return Low, nil
	case "MEDIUM":
		return Medium, nil
	case "HIGH":
		return High, nil
	}
	return Low, fmt.Errorf("unknown priority %q (want LOW, MEDIUM or HIGH)", s)
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
