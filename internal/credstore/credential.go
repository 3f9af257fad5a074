package credstore

import (
	"time"

	"golang.org/x/oauth2"
)

// User identifies the account a credential belongs to.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	PictureURL string `json:"pictureUrl,omitempty"`
}

// Credential is a bearer token bound to its owning identity and expiration.
// A Credential is either entirely present or entirely absent: stores reject
// partial records, and mutation happens only by whole-record replacement.
type Credential struct {
	// User is the identity the token was issued to.
	User User `json:"user"`

	// AccessToken is the bearer token used for authorization.
	AccessToken string `json:"accessToken"`

	// ExpiresAt is the instant the token stops being usable.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Complete reports whether the credential is a legal persisted value.
// A record missing its token or expiration is treated as absent.
func (c *Credential) Complete() bool {
	return c != nil && c.AccessToken != "" && !c.ExpiresAt.IsZero()
}

// Valid reports whether the credential is usable at the given instant.
func (c *Credential) Valid(now time.Time) bool {
	return c.Complete() && now.Before(c.ExpiresAt)
}

// ExpiresWithin reports whether the credential expires within the given
// horizon from now, i.e. whether a refresh should be attempted.
func (c *Credential) ExpiresWithin(now time.Time, horizon time.Duration) bool {
	if !c.Complete() {
		return true
	}
	return !now.Add(horizon).Before(c.ExpiresAt)
}

// ToOAuth2Token converts the credential to an oauth2.Token for interop with
// libraries that consume the standard token type.
func (c *Credential) ToOAuth2Token() *oauth2.Token {
	if c == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken: c.AccessToken,
		TokenType:   "Bearer",
		Expiry:      c.ExpiresAt,
	}
}
