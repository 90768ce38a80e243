package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the application error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConnectivity):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondWithError writes the mapped status. Client errors echo the message,
// server errors only the fallback text.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.Int("status", status))
		msg := fallback
		if status == http.StatusServiceUnavailable {
			msg = "Service temporarily unavailable, please retry"
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
