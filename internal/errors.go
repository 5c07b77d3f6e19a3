package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable matches any CatalogUnavailableError
	ErrCatalogUnavailable = errors.New("catalogue unavailable")
	// ErrPersistence matches any PersistenceError
	ErrPersistence = errors.New("persistence failure")
	// ErrRelayNotConfigured is returned before any request when the relay URL is empty
	ErrRelayNotConfigured = errors.New("relay endpoint not configured: set relay.url or ROUTINE_RELAY_URL")
	// ErrRelayRequest matches any RelayRequestError
	ErrRelayRequest = errors.New("relay request failed")
	// ErrNoSelection is returned when a routine is requested with nothing selected
	ErrNoSelection = errors.New("please select one or more products first")
	// ErrEmptyMessage is returned for blank chat input
	ErrEmptyMessage = errors.New("message is empty")
	// ErrEmptyReply is returned when the relay answered without content
	ErrEmptyReply = errors.New("no response from the API")
)

// CatalogUnavailableError represents a failure to fetch or parse the catalogue
type CatalogUnavailableError struct {
	Source string
	Err    error
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("catalogue unavailable [%s]: %v", e.Source, e.Err)
}

func (e *CatalogUnavailableError) Unwrap() error {
	return e.Err
}

func (e *CatalogUnavailableError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// PersistenceError represents a failed read or write of persisted state
type PersistenceError struct {
	Key string
	Op  string // "read", "write", "delete", "decode", "encode"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// RelayRequestError represents a non-2xx response or a transport failure
type RelayRequestError struct {
	Status int // 0 for transport failures
	Reason string
	Err    error
}

func (e *RelayRequestError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Status == 0 {
		return fmt.Sprintf("relay request failed: %s", reason)
	}
	return fmt.Sprintf("relay request failed (%d): %s", e.Status, reason)
}

func (e *RelayRequestError) Unwrap() error {
	return e.Err
}

func (e *RelayRequestError) Is(target error) bool {
	return target == ErrRelayRequest
}

// ExportError represents errors during transcript export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
