package httpapi

import (
	"net/http"
	"strings"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/service"
)

const sessionHeader = "X-Session-Id"

// sessionFromReq resolves the session id from the X-Session-Id header or a
// Bearer token. Both carry the same opaque id.
func sessionFromReq(r *http.Request) string {
	if sid := r.Header.Get(sessionHeader); sid != "" && sid != "null" {
		return sid
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// requireRole hydrates the session identity and gates it on role. An empty
// role list accepts any authenticated identity. On failure it writes the
// session-expired envelope and returns false.
func requireRole(w http.ResponseWriter, r *http.Request, auth service.AuthService, roles ...domain.Role) (*domain.User, bool) {
	user, err := auth.Session(r.Context(), sessionFromReq(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, SessionExpired())
		return nil, false
	}
	if len(roles) == 0 {
		return user, true
	}
	for _, role := range roles {
		if user.Role == role {
			return user, true
		}
	}
	writeJSON(w, http.StatusUnauthorized, SessionExpired())
	return nil, false
}
