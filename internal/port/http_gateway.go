package port

import (
	"context"
	"net/http"
)

// HTTPRequest describes one outbound request.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
}

// HTTPResponse is the normalized shape of every response returned by an
// HTTPGateway, regardless of the transport behind it.
type HTTPResponse struct {
	Status  int
	Body    []byte
	Headers http.Header
}

// IsSuccess reports whether Status is in the 2xx range.
func (r *HTTPResponse) IsSuccess() bool {
	return r.Status >= 200 && r.Status <= 299
}

// HTTPGateway performs outbound HTTP requests. A non-nil error means no
// response was received (connection refused, DNS failure, timeout, cancellation).
// Implementations must be safe for concurrent use and must not retry.
type HTTPGateway interface {
	Do(ctx context.Context, req HTTPRequest) (*HTTPResponse, error)
}
