package domain

import (
	"fmt"
)

// Priority ranks a task item for display. The zero value is PriorityLow.
type Priority int

// Priority values, ordered Low < Medium < High.
const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// ErrInvalidPriority is returned when a priority token is not one of
// Low, Medium or High.
var ErrInvalidPriority = fmt.Errorf("%w: priority must be one of Low, Medium, High", ErrValidation)

var priorityNames = [...]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// ParsePriority converts a user-supplied token into a Priority.
// The match is case-sensitive: "high" is rejected.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if name == s {
			return Priority(p), nil
		}
	}
	return PriorityLow, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// String returns the canonical token for the priority.
func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// MarshalText implements encoding.TextMarshaler so priorities serialize as
// their tokens in JSON and YAML.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrInvalidPriority
	}
	return []byte(priorityNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
