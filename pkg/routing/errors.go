package routing

import "errors"

// ErrNoRoute is returned when no rule or fallback resolves a target.
var ErrNoRoute = errors.New("no route for intent")

// ErrTargetProcessorNotFound is returned when delegating to an unknown
// component ID.
var ErrTargetProcessorNotFound = errors.New("target processor not found")

// ErrTimeout is returned when a dispatch exceeds its deadline. The context
// handed to the component is cancelled, but a component that ignores it may
// keep working.
var ErrTimeout = errors.New("dispatch timeout")

// ErrUnsupportedCompositionPattern is returned for unknown strategies.
var ErrUnsupportedCompositionPattern = errors.New("unsupported composition pattern")

// ErrMaxRetriesExceeded wraps the last failure after the retry overlay gives
// up.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")
