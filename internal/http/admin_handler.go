package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/service"

	"go.uber.org/zap"
)

type AdminHandler struct {
	auth   service.AuthService
	dues   service.DuesService
	logger *zap.Logger
}

func NewAdminHandler(auth service.AuthService, dues service.DuesService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, dues: dues, logger: logger}
}

// Payments handles GET /admin/api/v1/payments?status= — the payment review
// table scoped to the admin's complex. status accepts
// all|pending|approved|rejected; anything else returns an empty list.
func (h *AdminHandler) Payments(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireRole(w, r, h.auth, domain.RoleAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items := h.dues.PaymentsForComplex(r.Context(), admin.ComplexID, r.URL.Query().Get("status"))
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

// UpdateStatus handles PUT /admin/api/v1/payments/{id}/status with body
// {"status": "approved"|"rejected"}. A non-existing id is a silent success:
// the store contract makes the transition a no-op.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	_, ok := requireRole(w, r, h.auth, domain.RoleAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Status domain.PaymentStatus `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.dues.ReviewPayment(r.Context(), id, body.Status); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}

// Summary handles GET /admin/api/v1/summary — the dashboard stat cards.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireRole(w, r, h.auth, domain.RoleAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.dues.ComplexSummary(r.Context(), admin.ComplexID)))
}

// Residents handles the admin's resident roster:
// GET  /admin/api/v1/residents — residents of the admin's complex
// POST /admin/api/v1/residents — provision a resident account
func (h *AdminHandler) Residents(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireRole(w, r, h.auth, domain.RoleAdmin)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items := h.dues.ResidentsForComplex(r.Context(), admin.ComplexID)
		writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
	case http.MethodPost:
		var req service.CreateResidentRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		u, err := h.dues.CreateResident(r.Context(), admin.ComplexID, req)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(u))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ExportPayments handles GET /admin/api/v1/payments/export?status= and
// streams the scoped payment table as an Excel workbook.
func (h *AdminHandler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireRole(w, r, h.auth, domain.RoleAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items := h.dues.PaymentsForComplex(r.Context(), admin.ComplexID, r.URL.Query().Get("status"))
	raw, err := GeneratePaymentsExport(items)
	if err != nil {
		h.logger.Error("Failed to generate payments export", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to generate export"))
		return
	}
	filename := fmt.Sprintf("pagos-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(raw)
}
