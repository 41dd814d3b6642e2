// Package booking holds the seat rules shared by order creation and the
// session read path. It keeps no state and never touches the database; the
// tickets unique constraint is what finally serializes concurrent orders.
package booking

import (
	"errors"

	"github.com/google/uuid"
)

// Hall is the seat layout of a cinema hall: Rows rows of SeatsInRow seats,
// both counted from 1.
type Hall struct {
	Rows       int
	SeatsInRow int
}

// Capacity is the number of seats one session in the hall can sell.
func (h Hall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

// Place identifies one seat of one session.
type Place struct {
	SessionID uuid.UUID
	Row       int
	Seat      int
}

// Item is one requested ticket, in request order.
type Item struct {
	SessionID uuid.UUID
	Row       int
	Seat      int
}

func (i Item) Place() Place {
	return Place{SessionID: i.SessionID, Row: i.Row, Seat: i.Seat}
}

// ValidateSeat checks only the hall bounds.
func ValidateSeat(row, seat int, hall Hall) error {
	if row < 1 || row > hall.Rows {
		return &RangeError{Field: "row", Value: row, Max: hall.Rows}
	}
	if seat < 1 || seat > hall.SeatsInRow {
		return &RangeError{Field: "seat", Value: seat, Max: hall.SeatsInRow}
	}
	return nil
}

// CheckOrder validates a whole order request. halls maps each known session to
// its hall and taken holds places already sold. A seat repeated inside the
// request is reported on the later item.
func CheckOrder(items []Item, halls map[uuid.UUID]Hall, taken map[Place]struct{}) error {
	verr := &ValidationError{}
	if len(items) == 0 {
		verr.add(-1, "", ErrEmptyOrder)
		return verr.orNil()
	}

	seen := make(map[Place]struct{}, len(items))
	for i, item := range items {
		hall, ok := halls[item.SessionID]
		if !ok {
			verr.add(i, "movie_session", ErrUnknownSession)
			continue
		}

		if err := ValidateSeat(item.Row, item.Seat, hall); err != nil {
			field := "seat"
			var rerr *RangeError
			if errors.As(err, &rerr) {
				field = rerr.Field
			}
			verr.add(i, field, err)
			continue
		}

		place := item.Place()
		if _, sold := taken[place]; sold {
			verr.add(i, "seat", ErrSeatTaken)
			continue
		}
		if _, dup := seen[place]; dup {
			verr.add(i, "seat", ErrSeatTaken)
			continue
		}
		seen[place] = struct{}{}
	}

	return verr.orNil()
}

// Available is capacity minus sold, never below zero.
func Available(capacity, sold int) int {
	if n := capacity - sold; n > 0 {
		return n
	}
	return 0
}
