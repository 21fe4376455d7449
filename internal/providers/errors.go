package providers

import "errors"

var (
	// ErrConfigurationMissing is returned before any network call when no API key is set.
	ErrConfigurationMissing = errors.New("weather API key is not configured")
	// ErrLocationNotFound means geocoding returned no match for the location text.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUnavailable wraps transport and provider failures. Callers may retry manually.
	ErrUnavailable = errors.New("weather provider unavailable")
)
