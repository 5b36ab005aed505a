// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideagen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a generation call failed.
type ErrorKind int

const (
	// NetworkFailure means the request never produced an HTTP response.
	NetworkFailure ErrorKind = iota + 1
	// BadStatus means the API answered with a status other than 200.
	BadStatus
	// DecodeFailure means the response body did not match the expected schema.
	DecodeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case BadStatus:
		return "bad status"
	case DecodeFailure:
		return "decode failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *GenerationError of the same kind.
var (
	ErrNetwork   = errors.New("ideagen: network failure")
	ErrBadStatus = errors.New("ideagen: bad status")
	ErrDecode    = errors.New("ideagen: decode failure")
)

// GenerationError is returned by GenerateIdea for every failure. All kinds
// are terminal for the call; the client never retries.
type GenerationError struct {
	Kind ErrorKind

	// StatusCode is set for BadStatus.
	StatusCode int

	// Body holds a prefix of the response body for BadStatus, for diagnostics.
	Body string

	Err error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case BadStatus:
		if e.Body != "" {
			return fmt.Sprintf("idea generation: API returned %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("idea generation: API returned %d", e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("idea generation: %s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("idea generation: %s", e.Kind)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrBadStatus) and friends match on Kind.
func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == NetworkFailure
	case ErrBadStatus:
		return e.Kind == BadStatus
	case ErrDecode:
		return e.Kind == DecodeFailure
	}
	return false
}

// Retryable reports whether calling again might succeed: transport failures,
// 429, and 5xx responses. Decode failures are not retryable.
func Retryable(err error) bool {
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Kind {
	case NetworkFailure:
		return true
	case BadStatus:
		return gerr.StatusCode == 429 || gerr.StatusCode >= 500
	}
	return false
}
