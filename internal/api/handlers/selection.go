package handlers

import (
	"log/slog"
	"net/http"

	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/utils"
	"github.com/emberwake/merch-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SelectionHandler struct {
	modeService      service.ModeService
	selectionService service.SelectionService
	validator        *validator.Validate
}

func NewSelectionHandler(modeService service.ModeService, selectionService service.SelectionService) *SelectionHandler {
	return &SelectionHandler{modeService: modeService, selectionService: selectionService, validator: validator.New()}
}

// parse reads the optional selection body and the product id.
func (h *SelectionHandler) parse(w http.ResponseWriter, r *http.Request) (string, *models.SelectionRequest, bool) {

	id, err := utils.ParseID(r, "id")
	if err != nil {
		response.Error(w, err)
		return "", nil, false
	}

	var req models.SelectionRequest
	present, ok := utils.ParseOptional(r, w, &req, h.validator)
	if !ok {
		return "", nil, false
	}
	if !present {
		return id, nil, true
	}

	return id, &req, true
}

func (h *SelectionHandler) Preview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		id, req, ok := h.parse(w, r)
		if !ok {
			return
		}

		view, err := h.selectionService.Preview(r.Context(), sc.Mode, id, req)
		if err != nil {
			sc.Logger.Warn("Selection preview failed", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *SelectionHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		id, req, ok := h.parse(w, r)
		if !ok {
			return
		}

		view, err := h.selectionService.Confirm(r.Context(), sc.Mode, sc.Session, id, req)
		if err != nil {
			sc.Logger.Warn("Selection confirm failed", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		sc.Logger.Info("Selection added to cart", slog.String("productId", id), slog.Int("items", view.ItemCount))
		response.Success(w, http.StatusOK, view)
	}
}
