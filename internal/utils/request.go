package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing
// the error response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.InternalError("Failed to validate request").WithError(err))
		return false
	}

	return true

}

// ParseOptional is ParseAndValidate for endpoints whose body may be omitted.
// It reports false only after writing an error response.
func ParseOptional(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) (present bool, ok bool) {

	err := DecodeJSONBody(r, dest)
	if errors.Is(err, ErrEmptyBody) {
		return false, true
	}
	if err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false, false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return true, false
		}

		response.Error(w, appErrors.InternalError("Failed to validate request").WithError(err))
		return true, false
	}

	return true, true
}

// ParseID returns the named path value, rejecting blanks.
func ParseID(r *http.Request, key string) (string, error) {

	id := strings.TrimSpace(r.PathValue(key))
	if id == "" {
		return "", appErrors.BadRequestError("Missing " + key)
	}

	return id, nil
}
