package strategy

import "fmt"

// MalformedResponseMessage is the fixed, user-facing message of every GenerationError.
const MalformedResponseMessage = "response not in expected structured format"

// ConfigurationError reports a missing or invalid setting detected before any request is made
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Setting != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// TransportError reports a failed call to the generation service (network, auth, non-2xx, timeout)
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation service call failed: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// GenerationError reports a successful call whose payload could not be turned into a ContentStrategy.
// Raw holds the offending payload for diagnostics; it is never part of Error().
type GenerationError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
