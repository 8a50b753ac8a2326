package client

import (
	"net/http"

	"github.com/dmitrijs2005/micronotes/internal/client/credentials"
	"github.com/dmitrijs2005/micronotes/internal/common"
)

// bearerTransport decorates outgoing requests: the stored token, when
// present, goes into Authorization, and a request with a body but no
// explicit content type is marked as JSON.
type bearerTransport struct {
	tokens credentials.Store
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok, err := t.tokens.Get(req.Context())
	if err != nil {
		return nil, &tokenError{err: err}
	}

	req = req.Clone(req.Context())
	if ok && token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
	if req.Body != nil && req.Body != http.NoBody && req.Header.Get(common.ContentTypeHeader) == "" {
		req.Header.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	}

	return t.next.RoundTrip(req)
}

// tokenError is a local credential store failure; the request never left
// the process.
type tokenError struct {
	err error
}

func (e *tokenError) Error() string { return "read token: " + e.err.Error() }

func (e *tokenError) Unwrap() error { return e.err }
