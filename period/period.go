// Package period computes timezone-correct civil dates and period
// boundaries (day, ISO week, calendar month) for the scheduling engine.
// All functions are pure; the only external input is the system's timezone
// database.
package period

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTimezone is used when a routine carries no timezone of its own.
const DefaultTimezone = "Asia/Tokyo"

// ErrInvalidTimezone indicates the identifier was rejected by the timezone
// database. It is surfaced rather than swallowed: silently defaulting here
// would produce wrong period boundaries.
var ErrInvalidTimezone = errors.New("invalid timezone identifier")

// Unit is the granularity of a goal period.
type Unit string

const (
	UnitDaily   Unit = "daily"
	UnitWeekly  Unit = "weekly"
	UnitMonthly Unit = "monthly"
)

// ResolveTimezone returns the given IANA identifier, or DefaultTimezone when
// it is empty. It does not validate the name against the zone database;
// LoadLocation does that.
func ResolveTimezone(name string) string {
	if name == "" {
		return DefaultTimezone
	}
	return name
}

// LoadLocation resolves an IANA zone name (empty means DefaultTimezone) via
// the runtime's timezone database. Unknown names yield ErrInvalidTimezone.
func LoadLocation(name string) (*time.Location, error) {
	resolved := ResolveTimezone(name)
	loc, err := time.LoadLocation(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, resolved, err)
	}
	return loc, nil
}

// StartOfDay returns the zone-local midnight of the given date as an
// absolute instant.
func StartOfDay(d CivilDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDay returns the zone-local 23:59:59.999 of the given date as an
// absolute instant.
func EndOfDay(d CivilDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 999_000_000, loc)
}

// SameCivilDay reports whether both instants fall on the same wall-clock
// date in the given zone.
func SameCivilDay(a, b time.Time, loc *time.Location) bool {
	return CivilDateOf(a, loc) == CivilDateOf(b, loc)
}
