package discovery

import "errors"

// ErrComponentNotRegistered is returned when an operation addresses an unknown
// component ID.
var ErrComponentNotRegistered = errors.New("component not registered")

// ErrNilHandle is returned when registering a component without a handle.
// A record with no handle could be routed to but never dispatched.
var ErrNilHandle = errors.New("component handle must not be nil")

// ErrNoAvailableTargets is returned when selection runs against an empty
// candidate set.
var ErrNoAvailableTargets = errors.New("no available targets")

// ErrRegistryClosed is returned when a registry is used after Close.
var ErrRegistryClosed = errors.New("registry closed")
