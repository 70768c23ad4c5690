package utils

import (
	"time"
)

// Notification pipeline constants
const (
	// MaxSMSLength is the maximum length of a composed message in characters
	MaxSMSLength = 160

	// TruncatedPricesLength is how much of the price list survives truncation
	TruncatedPricesLength = 100

	// DefaultDedupeWindow suppresses repeat messages to the same number
	DefaultDedupeWindow = 10 * time.Minute

	// DefaultHelpline is printed when no helpline is configured
	DefaultHelpline = "1800-XXX-XXXX"
)

// Relay constants
const (
	// RelaySessionTTL is how long a masked-number session stays usable (2 hours)
	RelaySessionTTL = 2 * time.Hour

	// RelayPoolNumberUnavailable is stored when the number pool is empty
	RelayPoolNumberUnavailable = "N/A"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
