package middleware

import (
	"net/http"
	"strconv"

	"github.com/dmelnik/taskfence/internal/session"
	"github.com/dmelnik/taskfence/internal/web/identity"
)

// SessionAuth rejects requests without a logged-in session and stashes the
// session's user id in the request context for downstream handlers.
func SessionAuth(sessions *session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Get(r)
			userID, err := strconv.ParseInt(sess[session.KeyUserID], 10, 64)
			if err != nil || userID == 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "not signed in"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
		})
	}
}
