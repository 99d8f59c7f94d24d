package services

import "fmt"

// AuthenticationError means the tracking service rejected the credentials.
type AuthenticationError struct {
	Email string
	Err   error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for %q: %v", e.Email, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError is a network or session failure while talking to a remote service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TargetNotFoundError means the configured device was absent from the tracking service response.
type TargetNotFoundError struct {
	DeviceID string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("device %q not found or has no known location", e.DeviceID)
}

// LocationNotSetError means a render was attempted before a coordinate was supplied.
type LocationNotSetError struct{}

func (e *LocationNotSetError) Error() string {
	return "location not set"
}

// RenderRequestError is a non-200 answer from the map service.
type RenderRequestError struct {
	StatusCode int
	Body       string
}

func (e *RenderRequestError) Error() string {
	return fmt.Sprintf("map request failed: %d %s", e.StatusCode, e.Body)
}

// StorageError means the output file could not be written.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SinkError wraps a failure of a post-render sink.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// PostRequestError is a non-201 answer from the posting service.
type PostRequestError struct {
	StatusCode int
	Body       string
}

func (e *PostRequestError) Error() string {
	return fmt.Sprintf("post request failed: %d %s", e.StatusCode, e.Body)
}
