package httpapi

import (
	"net/http"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/service"

	"go.uber.org/zap"
)

type SuperAdminHandler struct {
	auth   service.AuthService
	dues   service.DuesService
	logger *zap.Logger
}

func NewSuperAdminHandler(auth service.AuthService, dues service.DuesService, logger *zap.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{auth: auth, dues: dues, logger: logger}
}

// Complexes handles the platform-level complex roster:
// GET  /superadmin/api/v1/complexes — complexes with their assigned admins
// POST /superadmin/api/v1/complexes — provision a complex
func (h *SuperAdminHandler) Complexes(w http.ResponseWriter, r *http.Request) {
	_, ok := requireRole(w, r, h.auth, domain.RoleSuperAdmin)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items := h.dues.ListComplexes(r.Context())
		writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
	case http.MethodPost:
		var body struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		}
		if err := readBodyJSON(r, 1<<20, &body); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		c, err := h.dues.CreateComplex(r.Context(), body.Name, body.Address)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(c))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// CreateAdmin handles POST /superadmin/api/v1/complexes/{id}/admins.
func (h *SuperAdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request, complexID string) {
	_, ok := requireRole(w, r, h.auth, domain.RoleSuperAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req service.CreateAdminRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	u, err := h.dues.CreateAdmin(r.Context(), complexID, req)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(u))
}
