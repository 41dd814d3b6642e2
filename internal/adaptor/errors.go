package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cinema-api/internal/booking"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto the response envelope.
// Anything unrecognised is logged and reported as 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatErr *booking.ValidationError
	var fieldErr *usecase.FieldError

	switch {
	case errors.As(err, &seatErr):
		log.Info(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid tickets", seatErr.Fields())

	case errors.As(err, &fieldErr):
		log.Info(operation+" validation failed", zap.Any("errors", fieldErr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", fieldErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Info(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is empty"
		}
		utils.ResponseBadRequest(w, msg, nil)
		return false
	}
	return true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	q := r.URL.Query()
	return request.NewPaginatedRequest(q.Get("page"), q.Get("per_page"))
}
