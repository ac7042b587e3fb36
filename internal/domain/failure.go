package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Failure is the error type produced by every stage of the authentication
// pipeline. Message is safe to show to the caller; Err is not.
type Failure struct {
	Kind    FailureKind
	Message string
	Fields  []string
	Err     error
}

var defaultMessages = map[FailureKind]string{
	FailureMissingHeader:            "authorization header is missing",
	FailureInvalidFormat:            `authorization header must have the form "Bearer <token>"`,
	FailureEmptyToken:               "token is missing",
	FailureAuthenticationRejected:   "invalid or expired token",
	FailureUpstreamClientError:      "failed to authenticate with identity provider",
	FailureUpstreamServerError:      "identity provider is unavailable",
	FailureUnexpectedUpstreamStatus: "unexpected response from identity provider",
	FailureNetworkError:             "service temporarily unavailable",
	FailureMalformedPayload:         "invalid response from authentication service",
	FailureMissingSubject:           "invalid user information received",
	FailureInvalidClaim:             "missing required fields",
	FailureConflictingIdentity:      "email is already bound to another account",
	FailureInternal:                 "an unexpected error occurred",
}

// NewFailure returns a Failure of the given kind with its default caller-safe
// message. cause may be nil.
func NewFailure(kind FailureKind, cause error) *Failure {
	msg, ok := defaultMessages[kind]
	if !ok {
		msg = defaultMessages[FailureInternal]
	}
	return &Failure{Kind: kind, Message: msg, Err: cause}
}

// NewInvalidClaim reports every missing claim field at once.
func NewInvalidClaim(fields []string) *Failure {
	f := NewFailure(FailureInvalidClaim, nil)
	f.Fields = fields
	f.Message = fmt.Sprintf("%s: %s", f.Message, strings.Join(fields, ", "))
	return f
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Code returns the kind in upper snake case, e.g. "EMPTY_TOKEN".
func (f *Failure) Code() string {
	return FailureCode(f.Kind)
}

// FailureCode converts a kind name to upper snake case.
func FailureCode(kind FailureKind) string {
	var b strings.Builder
	for i, r := range string(kind) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// AsFailure unwraps err to a *Failure. Errors that are not failures are
// reported as FailureInternal with err as the cause.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return NewFailure(FailureInternal, err)
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
