package auth

import (
	"golang.org/x/oauth2"

	"lumen/pkg/apierror"
)

// tokenSource adapts the Authenticator to the oauth2.TokenSource interface
// so the credential can feed libraries that consume the standard token type.
type tokenSource struct {
	auth *Authenticator
}

// TokenSource returns an oauth2.TokenSource view of the live credential.
// Token returns an error when no usable credential is held.
func (a *Authenticator) TokenSource() oauth2.TokenSource {
	return &tokenSource{auth: a}
}

// Token implements oauth2.TokenSource.
func (ts *tokenSource) Token() (*oauth2.Token, error) {
	cred := ts.auth.CurrentCredential()
	if cred == nil {
		return nil, apierror.New(apierror.KindUnauthorized, "no usable credential")
	}
	return cred.ToOAuth2Token(), nil
}
