package todoist

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/dmelnik/taskfence/internal/config"
	"github.com/dmelnik/taskfence/internal/db"
	"github.com/dmelnik/taskfence/internal/session"
	api "github.com/dmelnik/taskfence/internal/todoist"
	"gorm.io/gorm"
)

// HandleCallback processes the OAuth redirect from the provider: it
// validates the state handshake, exchanges the code for an access token,
// resolves the provider's user id for that token, and upserts the local
// user row before logging the session in.
func HandleCallback(cfg *config.Config, sessions *session.Store, database *gorm.DB, client *api.Client) http.HandlerFunc {
	oauthConfig := OAuthConfig(cfg)
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Get(r)

		want := sess[session.KeyOAuthState]
		if want == "" || r.URL.Query().Get("state") != want {
			http.Error(w, `{"error": "OAuth state mismatch"}`, http.StatusUnauthorized)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, `{"error": "missing authorization code"}`, http.StatusBadRequest)
			return
		}

		token, err := oauthConfig.Exchange(r.Context(), code)
		if err != nil {
			log.Printf("token exchange failed: %v", err)
			http.Error(w, fmt.Sprintf(`{"error": "token exchange failed: %v"}`, err), http.StatusBadGateway)
			return
		}

		providerUser, err := client.User(r.Context(), token.AccessToken)
		if err != nil {
			log.Printf("user lookup failed: %v", err)
			http.Error(w, fmt.Sprintf(`{"error": "user lookup failed: %v"}`, err), http.StatusBadGateway)
			return
		}

		user, err := db.UpsertUserToken(database, providerUser.ID, token.AccessToken)
		if err != nil {
			http.Error(w, fmt.Sprintf(`{"error": "failed to save user: %v"}`, err), http.StatusInternalServerError)
			return
		}
		log.Printf("linked account for user %d", user.ID)

		delete(sess, session.KeyOAuthState)
		sess[session.KeyUserID] = strconv.FormatInt(user.ID, 10)
		sessions.Save(w, sess)

		http.Redirect(w, r, "/", http.StatusFound)
	}
}
