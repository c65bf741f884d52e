package httpapi

import (
	"errors"
	"net/http"

	"alicuotas-data/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login handles POST /auth/api/v1/login.
// Invalid credentials surface a single generic message: callers cannot tell
// an unknown user from a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req service.LoginRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	req.IPAddress = r.RemoteAddr
	req.UserAgent = r.UserAgent()

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusOK, Fail("Credenciales inválidas"))
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("Ocurrió un error al iniciar sesión"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Session handles GET /auth/api/v1/session: hydrates the persisted identity
// without re-validating credentials.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, ok := requireRole(w, r, h.auth)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"userId":      user.ID,
		"username":    user.Username,
		"name":        user.Name,
		"role":        user.Role,
		"complexId":   user.ComplexID,
		"houseNumber": user.HouseNumber,
		"homePath":    user.Role.HomePath(),
	}))
}

// Logout handles POST /auth/api/v1/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.auth.Logout(r.Context(), sessionFromReq(r)); err != nil {
		h.logger.Warn("Logout failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to clear session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
