package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/relvacode/iso8601"

	itemdomain "github.com/ghuser/geoitems/services/item/domain"
)

// MinStartDateOffset is how far in the future a start date must be, measured
// from the moment it is validated.
const MinStartDateOffset = 7 * 24 * time.Hour

// Fallback layouts for inputs iso8601.ParseString rejects, notably a space
// instead of the T, basic-format offsets, hour-only times and the basic
// calendar format. Layouts without a zone are parsed as UTC wall-clock values.
var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15Z07:00",
	"2006-01-02T15Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15",
	"2006-01-02 15",
	"20060102T150405.999999999Z0700",
	"20060102T150405.999999999",
	"20060102T1504Z0700",
	"20060102T1504",
	"20060102T15",
	"20060102",
}

// StartDateValidator parses optional start dates and enforces the one-week
// minimum offset against its clock.
type StartDateValidator struct {
	clock clockwork.Clock
}

// NewStartDateValidator returns a validator reading the validation instant
// from clock. A nil clock means the real wall clock.
func NewStartDateValidator(clock clockwork.Clock) *StartDateValidator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StartDateValidator{clock: clock}
}

// Validate returns nil for a nil raw value. Otherwise it parses raw as an
// ISO-8601 date-time (assuming UTC when no offset is given), normalizes it to
// UTC and checks it is at least MinStartDateOffset after now.
//
// Failures wrap ErrInvalidStartDate together with ErrStartDateFormat or
// ErrStartDateTooSoon.
func (v *StartDateValidator) Validate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}

	parsed, err := ParseStartDate(*raw)
	if err != nil {
		return nil, err
	}

	threshold := v.clock.Now().UTC().Add(MinStartDateOffset)
	if parsed.Before(threshold) {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidStartDate, itemdomain.ErrStartDateTooSoon)
	}
	return &parsed, nil
}

// ParseStartDate parses an ISO-8601 date-time and returns it in UTC. Values
// without an offset get UTC attached without shifting the clock value.
func ParseStartDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := iso8601.ParseString(s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range startDateLayouts {
		// time.Parse yields UTC for layouts without a zone.
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %w: %q", itemdomain.ErrInvalidStartDate, itemdomain.ErrStartDateFormat, raw)
}
