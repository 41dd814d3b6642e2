// Package events carries domain events to the message broker.
package events

import (
	"context"
	"time"
)

// OrderCreated is published after an order and its tickets are committed.
type OrderCreated struct {
	OrderID   string        `json:"order_id"`
	UserID    string        `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	Tickets   []OrderedSeat `json:"tickets"`
}

type OrderedSeat struct {
	MovieSession string `json:"movie_session"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (Nop) Close() error { return nil }
