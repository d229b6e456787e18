package utils

import "time"

// NowUTC is the clock used for transaction and review timestamps.
// Truncated to microseconds so values round-trip through Postgres unchanged.
func NowUTC() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
