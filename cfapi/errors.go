package cfapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFetchFailed matches every error returned by the client via errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

type ErrKind int

const (
	// KindTransport covers network failures and non-success HTTP statuses.
	KindTransport ErrKind = iota + 1
	// KindService is a response in which the judge reported a failure.
	KindService
	// KindMalformed is a response that lacks fields the pipeline depends on.
	KindMalformed
)

func (k ErrKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

type FetchError struct {
	Kind       ErrKind
	StatusCode int    // HTTP status, 0 if no response was received
	Comment    string // failure comment reported by the judge
	Cause      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %v", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// HandleNotFound reports whether the judge rejected the handle as unknown.
func (e *FetchError) HandleNotFound() bool {
	return e.Kind == KindService && strings.Contains(strings.ToLower(e.Comment), "not found")
}

func newTransportErr(status int, cause error) *FetchError {
	return &FetchError{Kind: KindTransport, StatusCode: status, Cause: cause}
}

func newServiceErr(status int, comment string) *FetchError {
	cause := errors.New("judge reported a failure")
	if comment != "" {
		cause = errors.New(comment)
	}
	return &FetchError{Kind: KindService, StatusCode: status, Comment: comment, Cause: cause}
}

func newMalformedErr(cause error) *FetchError {
	return &FetchError{Kind: KindMalformed, StatusCode: 200, Cause: cause}
}
