// Package tokens holds the credential bundle produced by authentication and
// the store that persists it. The store prefers the platform keyring and
// falls back to an owner-only file, so credentials survive process restarts
// without requiring a secure backend to be present.
package tokens

import (
	"encoding/json"
	"time"
)

// ExpiryBuffer is subtracted from the stored expiry instant when checking
// freshness, so a token is never used for a request that might complete
// after actual expiry.
const ExpiryBuffer = 5 * time.Minute

// AuthTokens is the credential bundle from a successful authentication.
// A bundle is immutable once created; refresh produces a new bundle that
// replaces the stored one.
type AuthTokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string

	// ExpiresAt is always an absolute UTC instant, never a duration, so
	// clock drift across process restarts does not corrupt freshness checks.
	ExpiresAt time.Time

	UserID string
	Email  string
}

// IsExpiredAt reports whether the bundle should be considered expired at the
// given instant. The boundary is inclusive: a bundle whose expiry is exactly
// ExpiryBuffer away counts as expired.
func (t *AuthTokens) IsExpiredAt(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(t.ExpiresAt.Add(-ExpiryBuffer))
}

// IsExpired is IsExpiredAt against the current wall clock.
func (t *AuthTokens) IsExpired() bool {
	return t.IsExpiredAt(time.Now())
}

// storedTokens is the serialization DTO. The expiry instant is stored as a
// numeric epoch timestamp; all other fields are plain text.
type storedTokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

func (t *AuthTokens) marshal() ([]byte, error) {
	return json.Marshal(storedTokens{
		AccessToken:  t.AccessToken,
		IDToken:      t.IDToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt.UTC().Unix(),
		UserID:       t.UserID,
		Email:        t.Email,
	})
}

func unmarshalTokens(data []byte) (*AuthTokens, error) {
	var st storedTokens
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &AuthTokens{
		AccessToken:  st.AccessToken,
		IDToken:      st.IDToken,
		RefreshToken: st.RefreshToken,
		ExpiresAt:    time.Unix(st.ExpiresAt, 0).UTC(),
		UserID:       st.UserID,
		Email:        st.Email,
	}, nil
}
