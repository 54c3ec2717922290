package handlers

import (
	"log/slog"
	"net/http"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/utils"
	"github.com/emberwake/merch-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ModeHandler struct {
	modeService service.ModeService
	validator   *validator.Validate
}

func NewModeHandler(modeService service.ModeService) *ModeHandler {
	return &ModeHandler{modeService: modeService, validator: validator.New()}
}

// GetMode reports whether the session sees the live or the demo catalog.
func (h *ModeHandler) GetMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, errors.InvalidSessionError("Cart session required"))
			return
		}

		status, err := h.modeService.Resolve(r.Context(), session)
		if err != nil {
			logger.Error("Failed to resolve mode", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

func (h *ModeHandler) SetMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, errors.InvalidSessionError("Cart session required"))
			return
		}

		var req models.SetModeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid set mode input")
			return
		}

		status, err := h.modeService.SetDemo(r.Context(), session, *req.Demo)
		if err != nil {
			logger.Warn("Failed to change mode", slog.Bool("demo", *req.Demo), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Mode changed", slog.String("mode", string(status.Mode)))
		response.Success(w, http.StatusOK, status)
	}
}
