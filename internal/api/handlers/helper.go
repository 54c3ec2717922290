package handlers

import (
	"log/slog"
	"net/http"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/utils/response"
)

// scope is what every cart or catalog request needs before it reaches a
// service: the session naming its cart and the mode it runs in.
type scope struct {
	Session string
	Mode    models.Mode
	Logger  *slog.Logger
}

// resolveScope writes the error response itself and reports false when the
// request cannot be served.
func resolveScope(w http.ResponseWriter, r *http.Request, modes service.ModeService) (scope, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		logger.Warn("Request without a cart session")
		response.Error(w, errors.InvalidSessionError("Cart session required"))
		return scope{}, false
	}

	status, err := modes.Resolve(r.Context(), session)
	if err != nil {
		logger.Error("Failed to resolve mode", slog.Any("error", err))
		response.Error(w, err)
		return scope{}, false
	}

	return scope{
		Session: session,
		Mode:    status.Mode,
		Logger:  logger.With(slog.String("mode", string(status.Mode))),
	}, true
}
