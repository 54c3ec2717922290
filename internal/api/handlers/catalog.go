package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/utils"
	"github.com/emberwake/merch-cart/internal/utils/response"
)

type CatalogHandler struct {
	modeService    service.ModeService
	catalogService service.CatalogService
}

func NewCatalogHandler(modeService service.ModeService, catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{modeService: modeService, catalogService: catalogService}
}

// ListProducts serves one grid page, e.g. GET /products?filter=apparel&q=tour&page=1.
// A failed read still returns the products shown before it.
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		query := r.URL.Query()

		page := 1
		if raw := query.Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				response.Error(w, errors.BadRequestError("Invalid page"))
				return
			}
			page = n
		}

		filter := models.ProductFilter{
			Category: query.Get("filter"),
			Query:    query.Get("q"),
			Page:     page,
		}

		view, err := h.catalogService.ListProducts(r.Context(), sc.Mode, sc.Session, filter)

		data := models.ProductPage{Mode: sc.Mode, Page: page, Products: view.Products, Notice: view.Notice}
		if data.Products == nil {
			data.Products = []*models.Product{}
		}

		if err != nil {
			if errors.HasCode(err, errors.ErrCodeStaleResponse) {
				sc.Logger.Debug("Dropped superseded catalog response", slog.Any("filter", filter))
				response.Error(w, err)
				return
			}

			sc.Logger.Error("Failed to load products", slog.Any("filter", filter), slog.Any("error", err))
			response.ErrorWithData(w, err, data)
			return
		}

		sc.Logger.Debug("Products listed", slog.Int("count", len(data.Products)))
		response.Success(w, http.StatusOK, data)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sc, ok := resolveScope(w, r, h.modeService)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), sc.Mode, id)
		if err != nil {
			sc.Logger.Warn("Failed to get product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
