package aura

import (
	"context"
	"errors"
	"net/http"

	"aura-ops-be/internal/apperror"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider exchanges client credentials for short-lived bearer tokens
// against the Aura token endpoint. The oauth2 transport caches the token and
// re-exchanges when it expires.
type TokenProvider struct {
	conf *clientcredentials.Config
}

func NewTokenProvider(clientID, clientSecret, tokenURL string) *TokenProvider {
	return &TokenProvider{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

// HTTPClient returns a client whose transport injects the bearer token on
// every request.
func (p *TokenProvider) HTTPClient(ctx context.Context) *http.Client {
	return p.conf.Client(ctx)
}

// Token performs one exchange eagerly. Used at startup to fail fast on bad
// credentials.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.conf.Token(ctx)
	if err != nil {
		return "", &apperror.UpstreamAuthError{Err: err}
	}
	return tok.AccessToken, nil
}

// classifyError turns a rejected token exchange into an UpstreamAuthError so
// auth failures are distinguishable from plain request failures.
func classifyError(op, instanceID string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &apperror.UpstreamAuthError{Err: retrieveErr}
	}
	return &apperror.UpstreamRequestError{Op: op, InstanceID: instanceID, Detail: err.Error()}
}
