// Package util provides logging, common error types, and small helpers
// shared across the topology generation engine.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine failures
var (
	ErrUnsupportedDeviceType = errors.New("unsupported device type")
	ErrMalformedEndpoint     = errors.New("malformed connection endpoint")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrNotFound              = errors.New("resource not found")
)

// UnsupportedDeviceTypeError reports a device type label with no catalog
// match, exact or substring.
type UnsupportedDeviceTypeError struct {
	Device string
	Type   string
}

func (e *UnsupportedDeviceTypeError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("device %s: unsupported device type %q", e.Device, e.Type)
	}
	return fmt.Sprintf("unsupported device type %q", e.Type)
}

func (e *UnsupportedDeviceTypeError) Unwrap() error {
	return ErrUnsupportedDeviceType
}

// NewUnsupportedDeviceTypeError creates an unsupported device type error
func NewUnsupportedDeviceTypeError(device, typeLabel string) *UnsupportedDeviceTypeError {
	return &UnsupportedDeviceTypeError{Device: device, Type: typeLabel}
}

// MalformedEndpointError reports a connection endpoint that does not
// follow the "deviceName:interfaceName" convention.
type MalformedEndpointError struct {
	Endpoint string
}

func (e *MalformedEndpointError) Error() string {
	return fmt.Sprintf("malformed connection endpoint %q (expected 'device:interface')", e.Endpoint)
}

func (e *MalformedEndpointError) Unwrap() error {
	return ErrMalformedEndpoint
}

// NewMalformedEndpointError creates a malformed endpoint error
func NewMalformedEndpointError(endpoint string) *MalformedEndpointError {
	return &MalformedEndpointError{Endpoint: endpoint}
}

// SerializationError reports a failure to produce the wire-format file.
type SerializationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("serializing %s: %s", e.Path, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SerializationError) Unwrap() error {
	return ErrSerializationFailed
}

// NewSerializationError creates a serialization error
func NewSerializationError(path, reason string, err error) *SerializationError {
	return &SerializationError{Path: path, Reason: reason, Err: err}
}
