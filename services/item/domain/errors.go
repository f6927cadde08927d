package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemID indicates the identifier is not a 24-character hex object id.
	ErrInvalidItemID = errors.New("invalid item ID format")

	// ErrMissingRequiredField indicates name, postcode, latitude or longitude is absent.
	ErrMissingRequiredField = errors.New("missing required fields: name, postcode, latitude, or longitude")

	// ErrNameNotInUsers indicates the item name is not a member of its users list.
	ErrNameNotInUsers = errors.New("'name' must be included in 'users' list")

	// ErrInvalidPostcode indicates the postcode is not a US ZIP or ZIP+4.
	ErrInvalidPostcode = errors.New("invalid postcode format, expected a US postcode (XXXXX or XXXXX-XXXX)")

	// ErrInvalidStartDate is the umbrella for start date failures. It is always
	// joined with ErrStartDateFormat or ErrStartDateTooSoon.
	ErrInvalidStartDate = errors.New("invalid startDate")

	// ErrStartDateFormat indicates the start date is not an ISO-8601 date-time.
	ErrStartDateFormat = errors.New("provide a valid ISO 8601 string")

	// ErrStartDateTooSoon indicates the start date is less than one week away.
	ErrStartDateTooSoon = errors.New("startDate must be at least 1 week from the current date")

	// ErrInvalidCoordinateType indicates latitude or longitude is not numeric.
	ErrInvalidCoordinateType = errors.New("latitude and longitude must be valid floats")

	// ErrInvalidCoordinateRange indicates latitude or longitude is out of range.
	ErrInvalidCoordinateRange = errors.New("latitude must be between -90 and 90 and longitude between -180 and 180")

	// ErrConstraintViolation indicates the persisted record failed its consistency check.
	ErrConstraintViolation = errors.New("item constraint violation")

	// ErrInfrastructure wraps unexpected collaborator failures (database, cache, broker).
	ErrInfrastructure = errors.New("infrastructure failure")
)
