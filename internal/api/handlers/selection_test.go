package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emberwake/merch-cart/internal/api/handlers"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/services/mocks"
	"github.com/emberwake/merch-cart/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSelectionPreview(t *testing.T) {
	t.Run("Success - Without Body", func(t *testing.T) {
		// Arrange
		selections := new(mocks.SelectionService)
		selections.On("Preview", mock.Anything, models.ModeDemo, "demo-1", (*models.SelectionRequest)(nil)).
			Return(&service.SelectionView{Selected: map[string]string{"Size": "Small"}, Quantity: 1, CanConfirm: true}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-1/selection", nil, testSession, map[string]string{"id": "demo-1"})
		rr := httptest.NewRecorder()

		// Act
		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Preview()(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var view service.SelectionView
		decode(t, rr, &view)
		assert.True(t, view.CanConfirm)
		assert.Equal(t, "Small", view.Selected["Size"])
		selections.AssertExpectations(t)
	})

	t.Run("Success - With Options", func(t *testing.T) {
		selections := new(mocks.SelectionService)
		selections.On("Preview", mock.Anything, models.ModeDemo, "demo-1", mock.MatchedBy(func(req *models.SelectionRequest) bool {
			return req != nil && req.Options["Size"] == "XXL"
		})).Return(&service.SelectionView{Quantity: 1}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-1/selection",
			jsonBody(t, `{"options": {"Size": "XXL"}}`), testSession, map[string]string{"id": "demo-1"})
		rr := httptest.NewRecorder()

		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Preview()(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		selections.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Value", func(t *testing.T) {
		selections := new(mocks.SelectionService)
		selections.On("Preview", mock.Anything, models.ModeDemo, "demo-1", mock.Anything).
			Return(nil, appErrors.ValidationError("Unknown value")).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-1/selection",
			jsonBody(t, `{"options": {"Size": "Tiny"}}`), testSession, map[string]string{"id": "demo-1"})
		rr := httptest.NewRecorder()

		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Preview()(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Malformed Body", func(t *testing.T) {
		selections := new(mocks.SelectionService)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-1/selection",
			jsonBody(t, `{"options": [`), testSession, map[string]string{"id": "demo-1"})
		rr := httptest.NewRecorder()

		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Preview()(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		selections.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSelectionConfirm(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		selections := new(mocks.SelectionService)
		selections.On("Confirm", mock.Anything, models.ModeDemo, testSession, "demo-2", mock.Anything).Return(hoodieView(), nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-2/selection/confirm",
			jsonBody(t, `{"options": {"Size": "Large"}, "quantity": 1}`), testSession, map[string]string{"id": "demo-2"})
		rr := httptest.NewRecorder()

		// Act
		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Confirm()(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		selections.AssertExpectations(t)
	})

	t.Run("Failure - Unavailable", func(t *testing.T) {
		selections := new(mocks.SelectionService)
		selections.On("Confirm", mock.Anything, models.ModeDemo, testSession, "demo-5", mock.Anything).
			Return(nil, appErrors.UnavailableError(appErrors.MsgOutOfStock)).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/demo-5/selection/confirm",
			jsonBody(t, `{"options": {"Edition": "Deluxe Edition"}}`), testSession, map[string]string{"id": "demo-5"})
		rr := httptest.NewRecorder()

		handlers.NewSelectionHandler(modeIs(models.ModeDemo), selections).Confirm()(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, appErrors.MsgOutOfStock, decode(t, rr, nil).Error.Message)
	})
}
