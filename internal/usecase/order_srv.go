package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/internal/events"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
}

type orderService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	publisher events.Publisher,
	log *zap.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &orderService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "order")),
	}
}

// CreateOrder validates every ticket against its session hall and the seats
// already sold, then stores the order and its tickets in one transaction.
// Seat problems come back as *booking.ValidationError.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	items := make([]booking.Item, 0, len(req.Tickets))
	sessionIDs := make([]uuid.UUID, 0, len(req.Tickets))
	seen := make(map[uuid.UUID]struct{})
	for _, t := range req.Tickets {
		sessionID := uuid.MustParse(t.MovieSession)
		items = append(items, booking.Item{SessionID: sessionID, Row: t.Row, Seat: t.Seat})

		if _, ok := seen[sessionID]; !ok {
			seen[sessionID] = struct{}{}
			sessionIDs = append(sessionIDs, sessionID)
		}
	}

	if len(items) == 0 {
		return nil, booking.CheckOrder(items, nil, nil)
	}

	halls, err := s.repo.MovieSession.FindHalls(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("load session halls: %w", err)
	}

	taken, err := s.repo.Ticket.FindTakenPlaces(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("load taken places: %w", err)
	}

	if err := booking.CheckOrder(items, halls, taken); err != nil {
		s.log.Info("Order rejected",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	order := &entity.Order{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Tickets: make([]entity.Ticket, 0, len(items)),
	}
	for _, item := range items {
		order.Tickets = append(order.Tickets, entity.Ticket{
			ID:             uuid.New(),
			OrderID:        order.ID,
			MovieSessionID: item.SessionID,
			Row:            item.Row,
			Seat:           item.Seat,
		})
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			return nil, verr
		case errors.Is(err, repository.ErrMissingReference):
			return nil, fieldError("tickets", "Movie session was removed while ordering")
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(order.Tickets)),
	)

	s.publishCreated(ctx, order)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	tickets, err := s.repo.Ticket.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get order tickets: %w", err)
	}

	data := make([]response.OrderResponse, 0, len(orders))
	for _, o := range orders {
		o.Tickets = tickets[o.ID]
		data = append(data, response.OrderToResponse(o))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// publishCreated never fails the request; the order is already committed.
func (s *orderService) publishCreated(ctx context.Context, order *entity.Order) {
	event := events.OrderCreated{
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   make([]events.OrderedSeat, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, events.OrderedSeat{
			MovieSession: t.MovieSessionID.String(),
			Row:          t.Row,
			Seat:         t.Seat,
		})
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.log.Warn("Failed to publish order created event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
	}
}
