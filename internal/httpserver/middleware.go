package httpserver

import (
	"net/http"
	"strings"
)

// AuthMiddleware guards the operator routes with a bearer token minted by
// the jwt service (see cmd/tokengen).
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			s.handleError(w, NewUnauthorizedError("missing bearer token"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if _, err := s.jwtService.Verify(token); err != nil {
			s.handleError(w, NewUnauthorizedError("invalid token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
