package domain

// FailureKind classifies every way the authentication pipeline can fail.
type FailureKind string

const (
	// Credential extraction.
	FailureMissingHeader FailureKind = "MissingHeader"
	FailureInvalidFormat FailureKind = "InvalidFormat"
	FailureEmptyToken    FailureKind = "EmptyToken"

	// Identity provider.
	FailureAuthenticationRejected   FailureKind = "AuthenticationRejected"
	FailureUpstreamClientError      FailureKind = "UpstreamClientError"
	FailureUpstreamServerError      FailureKind = "UpstreamServerError"
	FailureUnexpectedUpstreamStatus FailureKind = "UnexpectedUpstreamStatus"
	FailureNetworkError             FailureKind = "NetworkError"
	FailureMalformedPayload         FailureKind = "MalformedPayload"
	FailureMissingSubject           FailureKind = "MissingSubject"

	// Reconciliation.
	FailureInvalidClaim        FailureKind = "InvalidClaim"
	FailureConflictingIdentity FailureKind = "ConflictingIdentity"

	// Anything not classified above.
	FailureInternal FailureKind = "Internal"
)

// StatusClass is the externally meaningful category of a failure.
type StatusClass string

const (
	StatusOK                 StatusClass = "ok"
	StatusUnauthorized       StatusClass = "unauthorized"
	StatusUnprocessable      StatusClass = "unprocessable"
	StatusServiceUnavailable StatusClass = "service_unavailable"
	StatusBadGateway         StatusClass = "bad_gateway"
	StatusInternal           StatusClass = "internal"
)

var statusClassByKind = map[FailureKind]StatusClass{
	FailureMissingHeader:            StatusUnauthorized,
	FailureInvalidFormat:            StatusUnauthorized,
	FailureEmptyToken:               StatusUnauthorized,
	FailureAuthenticationRejected:   StatusUnauthorized,
	FailureUpstreamClientError:      StatusBadGateway,
	FailureUpstreamServerError:      StatusBadGateway,
	FailureUnexpectedUpstreamStatus: StatusBadGateway,
	FailureNetworkError:             StatusServiceUnavailable,
	FailureMalformedPayload:         StatusUnprocessable,
	FailureMissingSubject:           StatusUnprocessable,
	FailureInvalidClaim:             StatusUnprocessable,
	FailureConflictingIdentity:      StatusUnprocessable,
}

// StatusClassFor returns the status class for kind. Unknown kinds are internal.
func StatusClassFor(kind FailureKind) StatusClass {
	if class, ok := statusClassByKind[kind]; ok {
		return class
	}
	return StatusInternal
}

// IsCallerFault reports whether kind is caused by the credential the caller presented.
func IsCallerFault(kind FailureKind) bool {
	return StatusClassFor(kind) == StatusUnauthorized
}
