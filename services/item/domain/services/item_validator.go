// Package services contains stateless domain services for the item bounded
// context: postcode syntax, start date rules, the geodesic bearing from the
// reference point, and the create/update validation pipeline built on them.
package services

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
)

// CreateFields are the caller-supplied fields of a create request, already
// decoded from the transport. Coordinates are untyped so that numeric
// strings and non-numeric values can be told apart.
type CreateFields struct {
	Name      string
	Postcode  string
	Latitude  any
	Longitude any
	Title     *string
	Users     []string
	StartDate *string
}

// ItemPatch carries the mutable fields of an update. A nil field is left
// untouched. Postcode and coordinates are immutable after creation and have
// no place here.
type ItemPatch struct {
	Name      *string
	StartDate *string
	Title     *string
	Users     []string
}

// ItemValidator runs the create and update validation pipelines.
type ItemValidator struct {
	startDates *StartDateValidator
}

// NewItemValidator returns an ItemValidator using startDates for startDate checks.
func NewItemValidator(startDates *StartDateValidator) *ItemValidator {
	return &ItemValidator{startDates: startDates}
}

// ValidateForCreate validates f and builds the ready-to-persist Item, with
// its direction computed from the coordinates. Checks run in order and stop
// at the first failure:
//
//  1. name, postcode, latitude and longitude are present
//  2. name is one of users
//  3. postcode is a US ZIP
//  4. startDate, when given, parses and is at least a week out
//  5. coordinates are numeric
//  6. coordinates are in range
//  7. name is 1 to 50 characters
//
// Range is checked before the bearing so the geodesic solver only ever sees
// valid coordinates.
func (v *ItemValidator) ValidateForCreate(f CreateFields) (*models.Item, error) {
	if f.Name == "" || f.Postcode == "" || isBlank(f.Latitude) || isBlank(f.Longitude) {
		return nil, itemdomain.ErrMissingRequiredField
	}

	item := models.NewItem(models.ItemName(f.Name), f.Postcode, 0, 0, "", f.Users)
	if !item.HasUser(f.Name) {
		return nil, itemdomain.ErrNameNotInUsers
	}

	if !IsValidPostcode(f.Postcode) {
		return nil, fmt.Errorf("%w: got %q", itemdomain.ErrInvalidPostcode, f.Postcode)
	}

	startDate, err := v.startDates.Validate(f.StartDate)
	if err != nil {
		return nil, err
	}

	lat, err := toFloat(f.Latitude)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude: %w", itemdomain.ErrInvalidCoordinateType, err)
	}
	lon, err := toFloat(f.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude: %w", itemdomain.ErrInvalidCoordinateType, err)
	}

	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	name, err := models.NewItemName(f.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrConstraintViolation, err)
	}

	item.Name = name
	item.Latitude, item.Longitude = lat, lon
	item.DirectionFromReference = Bearing(lat, lon)
	item.Title = f.Title
	item.StartDate = startDate
	return item, nil
}

// ValidateForUpdate applies patch to a copy of existing and returns it. Only
// name, startDate, title and users can change; startDate is re-validated
// and a new name must be 1 to 50 characters.
// Membership of name in users is not re-checked and the direction is never
// recomputed, since the coordinates cannot change.
func (v *ItemValidator) ValidateForUpdate(existing *models.Item, patch ItemPatch) (*models.Item, error) {
	updated := existing.Clone()

	if patch.StartDate != nil {
		startDate, err := v.startDates.Validate(patch.StartDate)
		if err != nil {
			return nil, err
		}
		updated.StartDate = startDate
	}
	if patch.Name != nil {
		name, err := models.NewItemName(*patch.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", itemdomain.ErrConstraintViolation, err)
		}
		updated.Name = name
	}
	if patch.Title != nil {
		title := *patch.Title
		updated.Title = &title
	}
	if patch.Users != nil {
		updated.Users = slices.Clone(patch.Users)
	}
	return updated, nil
}

// ValidateCoordinates checks latitude is within [-90, 90] and longitude
// within [-180, 180]. NaN is out of range.
func ValidateCoordinates(lat, lon float64) error {
	if !(lat >= -90 && lat <= 90) {
		return fmt.Errorf("%w: latitude %v", itemdomain.ErrInvalidCoordinateRange, lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return fmt.Errorf("%w: longitude %v", itemdomain.ErrInvalidCoordinateRange, lon)
	}
	return nil
}

func isBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	}
	return false
}

// toFloat coerces a decoded JSON value to float64. Numeric strings are
// accepted; booleans, arrays and objects are not.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
