package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/geoitems/pkg/validator"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", itemdomain.ErrItemNotFound, http.StatusNotFound},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", itemdomain.ErrItemNotFound), http.StatusNotFound},
		{"ErrInvalidItemID", itemdomain.ErrInvalidItemID, http.StatusBadRequest},
		{"ErrMissingRequiredField", itemdomain.ErrMissingRequiredField, http.StatusBadRequest},
		{"ErrNameNotInUsers", itemdomain.ErrNameNotInUsers, http.StatusBadRequest},
		{"ErrInvalidPostcode", fmt.Errorf("%w: got %q", itemdomain.ErrInvalidPostcode, "abc"), http.StatusBadRequest},
		{"start date too soon", fmt.Errorf("%w: %w", itemdomain.ErrInvalidStartDate, itemdomain.ErrStartDateTooSoon), http.StatusBadRequest},
		{"start date format", fmt.Errorf("%w: %w", itemdomain.ErrInvalidStartDate, itemdomain.ErrStartDateFormat), http.StatusBadRequest},
		{"ErrInvalidCoordinateType", itemdomain.ErrInvalidCoordinateType, http.StatusBadRequest},
		{"ErrInvalidCoordinateRange", itemdomain.ErrInvalidCoordinateRange, http.StatusBadRequest},
		{"malformed JSON", &json.SyntaxError{Offset: 1}, http.StatusBadRequest},
		{"wrong JSON type", fmt.Errorf("decode: %w", &json.UnmarshalTypeError{Value: "number", Field: "name"}), http.StatusBadRequest},
		{"ErrInvalidJSON", fmt.Errorf("%w: unexpected EOF", validator.ErrInvalidJSON), http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"ErrConstraintViolation", fmt.Errorf("%w: Name: Maximum length is 50", itemdomain.ErrConstraintViolation), http.StatusUnprocessableEntity},
		{"ErrInfrastructure", fmt.Errorf("%w: db down", itemdomain.ErrInfrastructure), http.StatusInternalServerError},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, got)
			}
			w := httptest.NewRecorder()
			WriteSafeError(w, tt.err, false)
			if w.Code != tt.wantStatus {
				t.Fatalf("WriteSafeError: expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteSafeError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSafeError(w, itemdomain.ErrItemNotFound, false)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "item not found" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestWriteSafeError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSafeError(w, itemdomain.ErrItemNotFound, false)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteSafeError_MasksServerErrorsInProduction(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", itemdomain.ErrInfrastructure)

	w := httptest.NewRecorder()
	WriteSafeError(w, err, true)

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected masked message, got %q", body["error"])
	}
}

func TestWriteSafeError_KeepsClientErrorsInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSafeError(w, itemdomain.ErrNameNotInUsers, true)

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != itemdomain.ErrNameNotInUsers.Error() {
		t.Fatalf("expected full message for 4xx, got %q", body["error"])
	}
}
