package adaptor

import (
	"net/http"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order created successfully", order)
}

// GetOrders handles GET /api/orders. Only the caller's orders are listed.
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orders, err := h.service.GetOrders(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}
