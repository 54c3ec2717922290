package handlers

import (
	"log/slog"
	"net/http"

	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/utils/response"
)

type CheckoutHandler struct {
	modeService     service.ModeService
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(modeService service.ModeService, checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{modeService: modeService, checkoutService: checkoutService}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		handoff, err := h.checkoutService.Checkout(r.Context(), sc.Mode, sc.Session)
		if err != nil {
			sc.Logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, handoff)
	}
}
