package fixture

import "errors"

// Sentinel errors for package fixture.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrExpectedFile is returned when a hash is requested for a directory.
	ErrExpectedFile = errors.New("expected file, got directory")
)
