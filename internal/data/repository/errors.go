package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by updates and deletes that match no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrReferenced is returned when a delete is blocked by rows pointing at the record.
	ErrReferenced = errors.New("record is still referenced")
	// ErrMissingReference is returned when a foreign key points at nothing.
	ErrMissingReference = errors.New("referenced record does not exist")
)

const ticketSeatConstraint = "tickets_movie_session_row_seat_key"

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgerrcode.ForeignKeyViolation
}

func isSeatTaken(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == ticketSeatConstraint
}
