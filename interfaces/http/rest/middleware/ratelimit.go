package middleware

import (
	"net/http"

	"listkeeper-backend/pkg/common"
	"listkeeper-backend/pkg/ratelimit"
)

// LimitPerUser throttles requests by the authenticated user ID. It must run
// after Authenticate so the user context is populated.
func LimitPerUser(limiter *ratelimit.TokenBucket) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := common.GetUserID(r.Context())
			if !ok {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
				return
			}
			if !limiter.Allow(userID) {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many export requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
