package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_NonNil(t *testing.T) {
	all := map[string]error{
		"ErrItemNotFound":           ErrItemNotFound,
		"ErrInvalidItemID":          ErrInvalidItemID,
		"ErrMissingRequiredField":   ErrMissingRequiredField,
		"ErrNameNotInUsers":         ErrNameNotInUsers,
		"ErrInvalidPostcode":        ErrInvalidPostcode,
		"ErrInvalidStartDate":       ErrInvalidStartDate,
		"ErrStartDateFormat":        ErrStartDateFormat,
		"ErrStartDateTooSoon":       ErrStartDateTooSoon,
		"ErrInvalidCoordinateType":  ErrInvalidCoordinateType,
		"ErrInvalidCoordinateRange": ErrInvalidCoordinateRange,
		"ErrConstraintViolation":    ErrConstraintViolation,
		"ErrInfrastructure":         ErrInfrastructure,
	}
	for name, err := range all {
		if err == nil {
			t.Fatalf("%s must not be nil", name)
		}
	}
}

func TestSentinelErrors_Messages(t *testing.T) {
	if ErrItemNotFound.Error() != "item not found" {
		t.Fatalf("unexpected message: %q", ErrItemNotFound.Error())
	}
	if ErrInvalidItemID.Error() != "invalid item ID format" {
		t.Fatalf("unexpected message: %q", ErrInvalidItemID.Error())
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("get item: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	tooSoon := fmt.Errorf("%w: %w", ErrInvalidStartDate, ErrStartDateTooSoon)
	if !errors.Is(tooSoon, ErrInvalidStartDate) {
		t.Fatal("errors.Is must match ErrInvalidStartDate")
	}
	if !errors.Is(tooSoon, ErrStartDateTooSoon) {
		t.Fatal("errors.Is must match ErrStartDateTooSoon")
	}
	if errors.Is(tooSoon, ErrStartDateFormat) {
		t.Fatal("too-soon failure must not match ErrStartDateFormat")
	}
}
