// Package session implements the cookie-backed session used for the OAuth
// state handshake and the logged-in user id. Values are serialized to JSON
// and signed with HMAC-SHA256; a cookie that fails verification reads as an
// empty session.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the single session cookie carrying all values.
const CookieName = "taskfence_session"

// Well-known session keys.
const (
	KeyOAuthState = "oauth_secret_state"
	KeyUserID     = "user_id"
)

// Session is the mutable bag of values for one browser.
type Session map[string]string

// Store signs and verifies session cookies with a shared secret.
type Store struct {
	secret []byte
}

// NewStore creates a store keyed by the configured session secret.
func NewStore(secret string) *Store {
	return &Store{secret: []byte(secret)}
}

// Get decodes the session from the request cookie. Missing, malformed or
// tampered cookies yield an empty session rather than an error.
func (s *Store) Get(r *http.Request) Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}
	}

	payload, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return Session{}
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Session{}
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return Session{}
	}
	if !hmac.Equal(want, s.sign(data)) {
		return Session{}
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}
	}
	return sess
}

// Save writes the session back as a signed cookie.
func (s *Store) Save(w http.ResponseWriter, sess Session) {
	data, _ := json.Marshal(sess)
	value := base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(s.sign(data))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) sign(data []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	return mac.Sum(nil)
}
