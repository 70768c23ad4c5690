// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// Clock returns the current time. Flows take one so tests can move time.
type Clock func() time.Time

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// RemainingTTL returns how long until deadline, or zero if it has passed
func RemainingTTL(now, deadline time.Time) time.Duration {
	if d := deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}
