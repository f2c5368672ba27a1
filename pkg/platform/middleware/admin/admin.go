package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"gatekeeper/pkg/platform/middleware/metadata"
	"gatekeeper/pkg/requestcontext"
)

// RequireBasicAuth guards the admin panel with a single username and
// password. Authenticated requests act as actorID.
func RequireBasicAuth(user, pass string, actorID int64, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPass, ok := r.BasicAuth()
			// Compare both halves so a wrong username costs the same as a wrong password.
			userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(user)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(gotPass), []byte(pass)) == 1
			if !ok || !userOK || !passOK {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin credentials mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", metadata.ClientIP(ctx),
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="gatekeeper"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"incorrect username or password"}`))
				return
			}

			ctx := requestcontext.WithActorID(r.Context(), actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
