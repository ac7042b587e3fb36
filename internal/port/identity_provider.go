package port

import "context"

// IdentityClaim holds the attributes an identity provider asserts about the
// authenticated subject.
type IdentityClaim struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// IdentityProvider verifies a bearer token against an external provider.
// Errors are *domain.Failure values.
type IdentityProvider interface {
	FetchIdentity(ctx context.Context, token string) (*IdentityClaim, error)
	Provider() string
}
