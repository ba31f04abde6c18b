package furigo

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMenuItem is returned for clicks on entries that do not select a direction.
	ErrUnknownMenuItem = errors.New("unknown menu item")
	// ErrEmptySelection is returned for clicks without selected text.
	ErrEmptySelection = errors.New("empty selection")
	// ErrNoListener is returned by a Notifier when no display surface is listening.
	ErrNoListener = errors.New("no listener")
)

// ProviderError indicates a failure talking to the remote generation endpoint.
type ProviderError struct {
	Message   string
	Cause     error
	NoContent bool // The response was well-formed but carried no generated text
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsNoContent reports whether err is a ProviderError flagged NoContent.
func IsNoContent(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.NoContent
	}
	return false
}

// StoreError indicates a preference storage failure.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// MarkupError indicates learning markup that could not be processed.
type MarkupError struct {
	Message string
	Cause   error
}

func (e *MarkupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("markup error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("markup error: %s", e.Message)
}

func (e *MarkupError) Unwrap() error {
	return e.Cause
}
