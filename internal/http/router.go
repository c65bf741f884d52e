package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux; the API surface is small
// enough that a third-party router would not pull its weight.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes wires the login/session/logout gate.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", h.Login)
	r.Handle("/auth/api/v1/logout", h.Logout)
	r.Handle("/auth/api/v1/session", h.Session)
}

// RegisterResidentRoutes wires the resident dashboard: payment history,
// manual submission, the hosted-button config and the provider redirect
// confirmation.
func (r *Router) RegisterResidentRoutes(h *ResidentHandler) {
	r.Handle("/resident/api/v1/payments", h.Payments)
	r.Handle("/resident/api/v1/payphone/button-config", h.ButtonConfig)
	r.Handle("/resident/api/v1/payment-response", h.PaymentResponse)
}

// RegisterAdminRoutes wires the per-complex admin dashboard.
func (r *Router) RegisterAdminRoutes(h *AdminHandler) {
	r.Handle("/admin/api/v1/payments", h.Payments)
	r.Handle("/admin/api/v1/payments/export", h.ExportPayments)
	r.Handle("/admin/api/v1/payments/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/admin/api/v1/payments/")
		if id, ok := strings.CutSuffix(rest, "/status"); ok && id != "" && !strings.Contains(id, "/") {
			h.UpdateStatus(w, req, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/admin/api/v1/summary", h.Summary)
	r.Handle("/admin/api/v1/residents", h.Residents)
}

// RegisterSuperAdminRoutes wires complex and admin provisioning.
func (r *Router) RegisterSuperAdminRoutes(h *SuperAdminHandler) {
	r.Handle("/superadmin/api/v1/complexes", h.Complexes)
	r.Handle("/superadmin/api/v1/complexes/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/superadmin/api/v1/complexes/")
		if id, ok := strings.CutSuffix(rest, "/admins"); ok && id != "" && !strings.Contains(id, "/") {
			h.CreateAdmin(w, req, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
}
