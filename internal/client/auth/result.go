package auth

import "github.com/mnedelko/geniable/internal/client/tokens"

// LoginResult is the outcome of a successful SRP exchange. Exactly one of
// the two fields is set: either the provider issued tokens, or it demands a
// password change before issuing any. Callers must handle both.
type LoginResult struct {
	// Tokens is the credential bundle when authentication completed.
	Tokens *tokens.AuthTokens

	// PasswordChange carries the state needed to complete a required
	// password change. This is not a failure; it is a required next step.
	PasswordChange *PasswordChangeChallenge
}

// Authenticated reports whether the login produced a credential bundle.
func (r *LoginResult) Authenticated() bool {
	return r.Tokens != nil
}

// PasswordChangeChallenge is issued for accounts with a temporary password.
// It is only discoverable after SRP verification succeeds.
type PasswordChangeChallenge struct {
	// Session is the opaque provider session token to echo back when
	// completing the change.
	Session string

	// UserID is the server's canonical user id for the account.
	UserID string
}
