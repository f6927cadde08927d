// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to StatusFor for each new domain sentinel error.
package errhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghuser/geoitems/pkg/httpx"
	"github.com/ghuser/geoitems/pkg/validator"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
)

// WriteSafeError maps err to an HTTP status code and writes a JSON error
// response. 5xx messages are masked when isProduction is set.
func WriteSafeError(w http.ResponseWriter, err error, isProduction bool) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// StatusFor returns the HTTP status for err. Uses errors.Is() so wrapped
// sentinel errors are matched correctly. Defaults to 500 for unrecognized errors.
func StatusFor(err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItemID),
		errors.Is(err, itemdomain.ErrMissingRequiredField),
		errors.Is(err, itemdomain.ErrNameNotInUsers),
		errors.Is(err, itemdomain.ErrInvalidPostcode),
		errors.Is(err, itemdomain.ErrInvalidStartDate),
		errors.Is(err, itemdomain.ErrInvalidCoordinateType),
		errors.Is(err, itemdomain.ErrInvalidCoordinateRange):
		return http.StatusBadRequest // 400
	case errors.Is(err, validator.ErrInvalidJSON), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return http.StatusBadRequest // 400
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge // 413
	case errors.Is(err, itemdomain.ErrConstraintViolation):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
