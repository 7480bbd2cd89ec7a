package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"listkeeper-backend/pkg/common"
)

// Claims are the token claims the API cares about. Subject carries the
// internal user ID; EncodedID is the opaque public identifier used in
// export object keys.
type Claims struct {
	EncodedID string `json:"encoded_id"`
	jwt.RegisteredClaims
}

// Authenticate validates HS256 bearer tokens and stores the caller's
// identity on the request context.
func Authenticate(secret, issuer string, logger *zap.Logger) func(next http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication token")
				return
			}

			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims, keyFunc, parserOpts...)
			if err != nil || !parsed.Valid {
				logger.Warn("rejected token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			if claims.Subject == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token missing subject")
				return
			}

			ctx := common.WithUserID(r.Context(), claims.Subject)
			if claims.EncodedID != "" {
				ctx = common.WithEncodedID(ctx, claims.EncodedID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}
