package testutil

import (
	"net/http"

	"gatekeeper/pkg/requestcontext"
)

// WithActor marks the request as made by actorID, which is what the admin
// auth middleware does for authenticated requests.
func WithActor(req *http.Request, actorID int64) *http.Request {
	return req.WithContext(requestcontext.WithActorID(req.Context(), actorID))
}
