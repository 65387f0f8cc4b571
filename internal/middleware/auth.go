package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vaultpass/passgen/internal/crypto"
)

type contextKey string

const subjectKey contextKey = "subject"

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errAuthScheme        = errors.New("invalid authorization format")
)

// JWTAuth rejects requests without a valid Bearer token. The token subject is
// attached to the request context, the access log entry and the rate limit key.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if entry, ok := r.Context().Value(logEntryKey).(*logEntry); ok {
				entry.subject = claims.Subject
			}
			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errAuthScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errAuthScheme
	}
	return token, nil
}

// SubjectFromContext returns the API client name carried by a validated token.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey).(string)
	return sub, ok
}
