package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	itemdomain "github.com/ghuser/geoitems/services/item/domain"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestStartDateValidator_Nil(t *testing.T) {
	v := NewStartDateValidator(clockwork.NewFakeClockAt(fixedNow))
	got, err := v.Validate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestStartDateValidator_Validate(t *testing.T) {
	v := NewStartDateValidator(clockwork.NewFakeClockAt(fixedNow))

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr error
	}{
		{"two weeks out with offset", fixedNow.Add(14 * 24 * time.Hour).Format(time.RFC3339Nano), fixedNow.Add(14 * 24 * time.Hour), nil},
		{"exactly one week out", "2025-03-17T12:00:00Z", time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC), nil},
		{"python isoformat with micros", "2025-04-01T08:30:00.123456+00:00", time.Date(2025, 4, 1, 8, 30, 0, 123456000, time.UTC), nil},
		{"non-UTC offset normalized", "2025-04-01T10:00:00+02:00", time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), nil},
		{"no offset assumed UTC", "2025-04-01T10:00:00", time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), nil},
		{"space separator", "2025-04-01 10:00:00", time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), nil},
		{"bare date", "2025-04-01", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), nil},
		{"millis with Z", "2025-04-01T10:00:00.123Z", time.Date(2025, 4, 1, 10, 0, 0, 123000000, time.UTC), nil},
		{"basic offset", "2025-04-01T10:00:00+0530", time.Date(2025, 4, 1, 4, 30, 0, 0, time.UTC), nil},
		{"basic offset minutes precision", "2025-04-01T10:00-0100", time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC), nil},
		{"basic date-time", "20250401T100000", time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), nil},
		{"basic date-time with offset", "20250401T100000+0200", time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), nil},
		{"basic date", "20250401", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), nil},
		{"hour only", "2025-04-01T10", time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), nil},
		{"hour only with offset", "2025-04-01T10+02:00", time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), nil},
		{"minutes only", "2025-04-01T10:15", time.Date(2025, 4, 1, 10, 15, 0, 0, time.UTC), nil},
		{"one day out", "2025-03-11T12:00:00Z", time.Time{}, itemdomain.ErrStartDateTooSoon},
		{"one second short of a week", "2025-03-17T11:59:59Z", time.Time{}, itemdomain.ErrStartDateTooSoon},
		{"offset pushes it under a week", "2025-03-17T13:00:00+02:00", time.Time{}, itemdomain.ErrStartDateTooSoon},
		{"in the past", "2020-01-01T00:00:00Z", time.Time{}, itemdomain.ErrStartDateTooSoon},
		{"invalid text", "invalid_date", time.Time{}, itemdomain.ErrStartDateFormat},
		{"empty string", "", time.Time{}, itemdomain.ErrStartDateFormat},
		{"impossible month", "2025-13-01T00:00:00Z", time.Time{}, itemdomain.ErrStartDateFormat},
		{"bad separator", "2025-04-01X10:00:00", time.Time{}, itemdomain.ErrStartDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(ptr(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !errors.Is(err, itemdomain.ErrInvalidStartDate) {
					t.Fatalf("expected ErrInvalidStartDate in chain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Fatalf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestStartDateValidator_ThresholdFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)
	v := NewStartDateValidator(clock)
	raw := ptr("2025-03-20T12:00:00Z") // ten days after fixedNow

	if _, err := v.Validate(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(4 * 24 * time.Hour)
	if _, err := v.Validate(raw); !errors.Is(err, itemdomain.ErrStartDateTooSoon) {
		t.Fatalf("expected too soon after advancing clock, got %v", err)
	}
}

func TestNewStartDateValidator_NilClockUsesRealTime(t *testing.T) {
	v := NewStartDateValidator(nil)
	future := time.Now().UTC().Add(14 * 24 * time.Hour).Format(time.RFC3339)
	if _, err := v.Validate(&future); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	soon := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	if _, err := v.Validate(&soon); !errors.Is(err, itemdomain.ErrStartDateTooSoon) {
		t.Fatalf("expected too soon, got %v", err)
	}
}
