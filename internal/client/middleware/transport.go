// Package middleware attaches the current credentials to outbound HTTP
// requests made by the rest of the CLI's API clients.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mnedelko/geniable/internal/client/tokens"
	"github.com/mnedelko/geniable/internal/common"
)

// TokenSource yields the current credential bundle, refreshing it when
// needed, or nil when the user is not authenticated.
type TokenSource interface {
	CurrentTokens(ctx context.Context) *tokens.AuthTokens
}

// Transport is an http.RoundTripper that injects a bearer Authorization
// header with the identity token and a per-request id. API gateways
// authorize on the identity token, not the access token.
type Transport struct {
	// Base is the underlying transport. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Source provides the credentials for each request.
	Source TokenSource
}

// RoundTrip implements http.RoundTripper. It fails with ErrNotAuthenticated
// before sending anything when no usable credentials exist, so API clients
// report "please log in" instead of an opaque 401.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	toks := t.Source.CurrentTokens(req.Context())
	if toks == nil {
		return nil, common.ErrNotAuthenticated
	}

	// Per RoundTripper contract the original request is not modified.
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+toks.IDToken)
	out.Header.Set("X-Request-Id", uuid.NewString())

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

// NewHTTPClient returns an http.Client whose requests carry the current
// credentials.
func NewHTTPClient(source TokenSource) *http.Client {
	return &http.Client{Transport: &Transport{Source: source}}
}
