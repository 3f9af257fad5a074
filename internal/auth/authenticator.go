package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"lumen/internal/credstore"
	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

// refreshHorizon is how close to expiry a credential may get before
// EnsureFresh attempts a refresh.
const refreshHorizon = 5 * time.Minute

// Exchanger performs the sign-in exchange against the backend, turning an
// external identity assertion into a Credential.
type Exchanger interface {
	ExchangeAssertion(ctx context.Context, assertion string) (*credstore.Credential, error)
}

// Refresher performs a refresh exchange for an existing credential.
// The Lumen backend issues tokens without a refresh grant, so the shipped
// wiring leaves this nil and a refresh attempt degrades to sign-out; a
// backend with real refresh tokens plugs in here without touching the
// single-flight discipline around it.
type Refresher interface {
	Refresh(ctx context.Context, current *credstore.Credential) (*credstore.Credential, error)
}

// Authenticator owns the process-wide authentication state. It is the single
// source of truth for "is the current token usable now" and the only writer
// of the credential, both in memory and in the store.
type Authenticator struct {
	mu     sync.RWMutex
	state  State
	user   *credstore.User
	reason string
	cred   *credstore.Credential

	store     credstore.Store
	exchanger Exchanger
	refresher Refresher

	// now is injectable for expiry tests.
	now func() time.Time

	// refreshGroup collapses concurrent refresh attempts into one physical
	// exchange; concurrent callers share its result.
	refreshGroup singleflight.Group
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithRefresher wires a real refresh exchange.
func WithRefresher(r Refresher) Option {
	return func(a *Authenticator) { a.refresher = r }
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// NewAuthenticator creates an Authenticator backed by the given store and
// sign-in exchanger. Any valid persisted credential is restored, so a signed-in
// identity survives process restarts.
func NewAuthenticator(store credstore.Store, exchanger Exchanger, opts ...Option) *Authenticator {
	a := &Authenticator{
		state:     StateUnauthenticated,
		store:     store,
		exchanger: exchanger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	cred, err := store.Load()
	if err != nil {
		// Storage faults read as "credential absent".
		logging.Warn("Auth", "Failed to restore credential: %v", err)
		return a
	}
	if cred.Valid(a.now()) {
		a.cred = cred
		a.user = &cred.User
		a.state = StateAuthenticated
		logging.Info("Auth", "Restored credential for %s (expires %s)",
			cred.User.Email, cred.ExpiresAt.Format(time.RFC3339))
	}
	return a
}

// SignIn exchanges an external identity assertion for a Credential.
// On success the credential is persisted and the state becomes Authenticated;
// on failure the state becomes Failed until the next sign-in request.
func (a *Authenticator) SignIn(ctx context.Context, identityAssertion string) error {
	a.mu.Lock()
	a.state = StateAuthenticating
	a.reason = ""
	a.mu.Unlock()

	if a.exchanger == nil {
		err := apierror.New(apierror.KindNoBackendConfigured, "no sign-in backend configured")
		a.fail(err.Error())
		return err
	}

	cred, err := a.exchanger.ExchangeAssertion(ctx, identityAssertion)
	if err != nil {
		// A rejected exchange means the assertion itself was not accepted.
		apiErr := apierror.As(err)
		if apiErr != nil && (apiErr.Kind == apierror.KindUnauthorized || apiErr.Kind == apierror.KindBadRequest) {
			err = apierror.Wrap(apierror.KindInvalidAssertion, err, "identity assertion rejected")
		}
		a.fail(err.Error())
		return err
	}

	a.mu.Lock()
	a.cred = cred
	a.user = &cred.User
	a.state = StateAuthenticated
	a.mu.Unlock()

	if err := a.store.Save(cred); err != nil {
		// Persistence is best-effort: the in-memory credential stays usable
		// for this process, it just will not survive a restart.
		logging.Warn("Auth", "Failed to persist credential: %v", err)
	}

	logging.Info("Auth", "Signed in as %s (token %s, expires %s)",
		cred.User.Email, logging.TruncateToken(cred.AccessToken), cred.ExpiresAt.Format(time.RFC3339))
	return nil
}

// CurrentCredential returns a snapshot of the live credential, or nil once
// it has expired. A stale token is never handed to a caller.
func (a *Authenticator) CurrentCredential() *credstore.Credential {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.cred.Valid(a.now()) {
		return nil
	}
	c := *a.cred
	return &c
}

// EnsureFresh makes sure the credential will stay usable for the near future,
// refreshing it when it expires within the refresh horizon. The returned
// boolean reports whether the subsequent credential is usable.
//
// Safe for concurrent use: only one physical refresh exchange is ever in
// flight; concurrent callers await that attempt rather than issuing
// duplicates.
func (a *Authenticator) EnsureFresh(ctx context.Context) bool {
	a.mu.RLock()
	cred := a.cred
	a.mu.RUnlock()

	if !cred.Complete() {
		return false
	}
	if !cred.ExpiresWithin(a.now(), refreshHorizon) {
		return true
	}

	usable, _, _ := a.refreshGroup.Do("refresh", func() (interface{}, error) {
		return a.refresh(ctx), nil
	})
	return usable.(bool)
}

// refresh performs the single physical refresh attempt. It runs inside the
// single-flight group, so at most one execution is live at a time.
func (a *Authenticator) refresh(ctx context.Context) bool {
	// Another caller may have completed a refresh while this one waited.
	a.mu.RLock()
	cred := a.cred
	a.mu.RUnlock()
	if cred.Complete() && !cred.ExpiresWithin(a.now(), refreshHorizon) {
		return true
	}

	if a.refresher == nil {
		// No refresh grant is issued by the backend: a credential this close
		// to expiry cannot be extended, so the session ends and the caller
		// must re-authenticate.
		logging.Info("Auth", "Credential expiring and no refresh grant available; signing out")
		a.SignOut()
		return false
	}

	fresh, err := a.refresher.Refresh(ctx, cred)
	if err != nil {
		logging.Warn("Auth", "Refresh exchange failed, signing out: %v", err)
		a.SignOut()
		return false
	}

	a.mu.Lock()
	a.cred = fresh
	a.user = &fresh.User
	a.state = StateAuthenticated
	a.mu.Unlock()

	if err := a.store.Save(fresh); err != nil {
		logging.Warn("Auth", "Failed to persist refreshed credential: %v", err)
	}
	logging.Debug("Auth", "Refreshed credential for %s (expires %s)",
		fresh.User.Email, fresh.ExpiresAt.Format(time.RFC3339))
	return true
}

// SignOut clears the credential store and resets the state to
// Unauthenticated. It never fails: a storage error only costs the cleanup of
// the persisted record, which a later Save overwrites anyway.
func (a *Authenticator) SignOut() {
	a.mu.Lock()
	a.cred = nil
	a.user = nil
	a.reason = ""
	a.state = StateUnauthenticated
	a.mu.Unlock()

	if err := a.store.Clear(); err != nil {
		logging.Warn("Auth", "Failed to clear credential store: %v", err)
	}
	logging.Info("Auth", "Signed out")
}

// StateSnapshot returns an immutable snapshot of the authentication state.
func (a *Authenticator) StateSnapshot() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := Status{State: a.state, Reason: a.reason}
	if a.user != nil {
		u := *a.user
		st.User = &u
	}
	return st
}

// IsAuthenticated reports whether a usable credential is currently held.
func (a *Authenticator) IsAuthenticated() bool {
	return a.CurrentCredential() != nil
}

func (a *Authenticator) fail(reason string) {
	a.mu.Lock()
	a.state = StateFailed
	a.reason = reason
	a.cred = nil
	a.user = nil
	a.mu.Unlock()
}
