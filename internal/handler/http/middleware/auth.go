package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-recruitment/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthRequired rejects requests whose verified token is missing, invalid or
// not an access token. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}

		if tokenType, ok := claims["type"].(string); !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
