package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghuser/geoitems/pkg/httpx"
	"github.com/ghuser/geoitems/pkg/logger"
)

const bearerScheme = "bearer"

// UnauthorizedMessage is the error body returned for requests without a token.
const UnauthorizedMessage = "Unauthorized. Missing Bearer token."

// ErrMissingToken is returned by RequireToken when the header carries no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// RequireToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme is case-insensitive. The token content is
// not evaluated; any non-empty value is accepted.
func RequireToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// RequireBearer is a chi middleware that rejects requests without a bearer
// token with 401.
func RequireBearer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := RequireToken(r.Header.Get("Authorization")); err != nil {
				log.DebugContext(r.Context(), "request rejected", "reason", err.Error(), "path", r.URL.Path)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": UnauthorizedMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
