// Package common defines shared constants and sentinel errors used across
// the client, services and CLI layers of bidscurator. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorNotImplemented = errors.New("not yet implemented")

	// Local attachment errors.
	ErrorFileMissing = errors.New("file does not exist")

	// Validation errors.
	ErrorInvalidRecord = errors.New("invalid BIDS record")
)
