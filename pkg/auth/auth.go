// Package auth validates the configured credential pair and issues session
// tokens through the session store.
package auth

import (
	"crypto/subtle"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/session"
)

// Authenticator checks credentials against the single configured pair.
type Authenticator struct {
	username string
	password string
	store    *session.Store
}

// New builds an Authenticator bound to the given session store.
func New(username, password string, store *session.Store) *Authenticator {
	return &Authenticator{
		username: username,
		password: password,
		store:    store,
	}
}

// Login verifies the credential pair and returns a fresh session token.
// Both fields are compared in constant time and any mismatch yields the
// same error, so callers cannot learn which field was wrong.
func (a *Authenticator) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	if userOK&passOK != 1 {
		return "", apperrors.New(apperrors.ErrCodeInvalidCredentials, "invalid username or password")
	}
	return a.store.Create()
}

// Logout revokes the token. Always succeeds, even for unknown tokens.
func (a *Authenticator) Logout(token string) {
	a.store.Revoke(token)
}

// Check reports whether the token names a live session.
func (a *Authenticator) Check(token string) bool {
	return a.store.Validate(token)
}
