package entity

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	Tickets []Ticket
}
