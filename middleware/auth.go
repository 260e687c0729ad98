package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/battlenet-login/userctx"
)

// Session keys shared with the auth controller
const (
	SessionAccountID     = "user_id"
	SessionNickname      = "user_nickname"
	SessionRedirectAfter = "redirect_after_login"
)

// RequireAuth ensures the user is authenticated.
// If not, it stores the intended destination and redirects to loginPath.
func RequireAuth(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.GetSession(r)
			accountID, ok := sess.Get(SessionAccountID).(int64)

			if !ok || accountID == 0 {
				// Store the intended destination for redirect after login
				sess.Set(SessionRedirectAfter, r.URL.Path)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			// Add account to request context for use in handlers
			ctx := userctx.SetAccountID(r.Context(), accountID)
			if nickname, ok := sess.Get(SessionNickname).(string); ok {
				ctx = userctx.SetNickname(ctx, nickname)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
