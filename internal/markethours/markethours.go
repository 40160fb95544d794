// Package markethours decides how long market data stays fresh. The exchange
// session window (NSE: 09:15-15:30 IST, Mon-Fri) is configuration; everything
// here is a pure function of (now, session) so tests can pin the clock.
package markethours

import "time"

type Session struct {
	Location  *time.Location
	OpenHour  int
	OpenMin   int
	CloseHour int
	CloseMin  int
}

// MaxClosedTTL caps the "cache until next open" TTL so a holiday stretch
// never produces a multi-day cache entry.
const MaxClosedTTL = 24 * time.Hour

// IsOpen reports whether the exchange session is in progress at now.
func (s Session) IsOpen(now time.Time) bool {
	local := now.In(s.Location)
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return false
	}
	open := time.Date(local.Year(), local.Month(), local.Day(), s.OpenHour, s.OpenMin, 0, 0, s.Location)
	close := time.Date(local.Year(), local.Month(), local.Day(), s.CloseHour, s.CloseMin, 0, 0, s.Location)
	return !local.Before(open) && !local.After(close)
}

// NextOpen returns the next session open at or after now.
func (s Session) NextOpen(now time.Time) time.Time {
	local := now.In(s.Location)
	open := time.Date(local.Year(), local.Month(), local.Day(), s.OpenHour, s.OpenMin, 0, 0, s.Location)
	if !local.Before(open) {
		open = open.AddDate(0, 0, 1)
	}
	for open.Weekday() == time.Saturday || open.Weekday() == time.Sunday {
		open = open.AddDate(0, 0, 1)
	}
	return open
}

// CacheTTL returns base while the market is open, otherwise the time until
// the next session open, capped at MaxClosedTTL.
func (s Session) CacheTTL(now time.Time, base time.Duration) time.Duration {
	if s.IsOpen(now) {
		return base
	}
	until := s.NextOpen(now).Sub(now)
	if until > MaxClosedTTL {
		return MaxClosedTTL
	}
	if until < base {
		return base
	}
	return until
}
