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

type CartHandler struct {
	modeService service.ModeService
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(modeService service.ModeService, cartService service.CartService) *CartHandler {
	return &CartHandler{modeService: modeService, cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		view, err := h.cartService.GetCart(r.Context(), sc.Mode, sc.Session)
		if err != nil {
			sc.Logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		view, err := h.cartService.ClearCart(r.Context(), sc.Mode, sc.Session)
		if err != nil {
			sc.Logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		sc.Logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			sc.Logger.Warn("Invalid add item input")
			return
		}

		view, err := h.cartService.AddItem(r.Context(), sc.Mode, sc.Session, &req)
		if err != nil {
			sc.Logger.Warn("Failed to add item", slog.String("productId", req.ProductID), slog.String("variantId", req.VariantID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		sc.Logger.Info("Item added to cart", slog.String("productId", req.ProductID), slog.String("variantId", req.VariantID))
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			sc.Logger.Warn("Invalid update quantity input")
			return
		}

		view, err := h.cartService.UpdateQuantity(r.Context(), sc.Mode, sc.Session, &req)
		if err != nil {
			sc.Logger.Warn("Failed to update quantity", slog.String("variantId", req.VariantID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			sc.Logger.Warn("Invalid remove item input")
			return
		}

		view, err := h.cartService.RemoveItem(r.Context(), sc.Mode, sc.Session, &req)
		if err != nil {
			sc.Logger.Warn("Failed to remove item", slog.String("variantId", req.VariantID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// HandleEvent applies one drawer control (increase, decrease, remove, set).
func (h *CartHandler) HandleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		var req models.CartEventRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			sc.Logger.Warn("Invalid cart event input")
			return
		}

		view, err := h.cartService.HandleEvent(r.Context(), sc.Mode, sc.Session, &req)
		if err != nil {
			sc.Logger.Warn("Cart event failed", slog.String("event", req.Event), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}
