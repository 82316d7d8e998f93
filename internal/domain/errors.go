package domain

import "errors"

var (
	// ErrLocationNotFound means the provider does not know the location
	ErrLocationNotFound = errors.New("location not found")
	// ErrProviderUnavailable covers network failures, timeouts and non-200 answers
	ErrProviderUnavailable = errors.New("forecast provider unavailable")
	// ErrMalformedPayload means the provider answered but the payload is unusable
	ErrMalformedPayload = errors.New("malformed forecast payload")
	// ErrCorruptState means persisted user state could not be parsed
	ErrCorruptState = errors.New("corrupt user state")
	// ErrUnrecognizedInput means no transition matches the input in the current state
	ErrUnrecognizedInput = errors.New("unrecognized input")
	// ErrUnknownCode is returned when parsing an enum value fails
	ErrUnknownCode = errors.New("unknown code")
)
