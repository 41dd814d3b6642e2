package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOutOfRange     = errors.New("seat is out of hall range")
	ErrSeatTaken      = errors.New("seat is already taken")
	ErrEmptyOrder     = errors.New("order must contain at least one ticket")
	ErrUnknownSession = errors.New("movie session does not exist")
)

// RangeError reports which coordinate fell outside the hall.
type RangeError struct {
	Field string // "row" or "seat"
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d must be between 1 and %d", e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Problem is one failed ticket item. Index is the item's position in the request.
type Problem struct {
	Index int
	Field string
	Err   error
}

func (p Problem) Key() string {
	if p.Index < 0 {
		return "tickets"
	}
	return fmt.Sprintf("tickets[%d].%s", p.Index, p.Field)
}

// ValidationError collects every offending item of an order request.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Key()+": "+p.Err.Error())
	}
	return "invalid order: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the item errors so errors.Is(err, ErrSeatTaken) works on the aggregate.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		errs = append(errs, p.Err)
	}
	return errs
}

// Fields renders the problems as the field map used in API error bodies.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Problems))
	for _, p := range e.Problems {
		key := p.Key()
		if _, ok := fields[key]; ok {
			continue
		}
		fields[key] = p.Err.Error()
	}
	return fields
}

func (e *ValidationError) add(index int, field string, err error) {
	e.Problems = append(e.Problems, Problem{Index: index, Field: field, Err: err})
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	sort.SliceStable(e.Problems, func(i, j int) bool {
		return e.Problems[i].Index < e.Problems[j].Index
	})
	return e
}

// SeatTakenAt builds the error returned when the database rejects item index.
func SeatTakenAt(index int) error {
	v := &ValidationError{}
	v.add(index, "seat", ErrSeatTaken)
	return v
}
