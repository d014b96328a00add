package todoist

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/dmelnik/taskfence/internal/config"
	"github.com/dmelnik/taskfence/internal/session"
)

// HandleAuthorize starts the OAuth flow: it stores a fresh random state
// value in the caller's session and redirects to the provider's consent
// page.
func HandleAuthorize(cfg *config.Config, sessions *session.Store) http.HandlerFunc {
	oauthConfig := OAuthConfig(cfg)
	return func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 32)
		rand.Read(b)
		state := base64.StdEncoding.EncodeToString(b)

		sess := sessions.Get(r)
		sess[session.KeyOAuthState] = state
		sessions.Save(w, sess)

		http.Redirect(w, r, oauthConfig.AuthCodeURL(state), http.StatusFound)
	}
}
