package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/service"

	"go.uber.org/zap"
)

type ResidentHandler struct {
	auth      service.AuthService
	dues      service.DuesService
	confirmer service.PaymentConfirmer
	logger    *zap.Logger
}

func NewResidentHandler(auth service.AuthService, dues service.DuesService, confirmer service.PaymentConfirmer, logger *zap.Logger) *ResidentHandler {
	return &ResidentHandler{auth: auth, dues: dues, confirmer: confirmer, logger: logger}
}

// Payments handles the resident dashboard collection:
// GET  /resident/api/v1/payments  — own payment history, newest first
// POST /resident/api/v1/payments  — manual bank-deposit record
func (h *ResidentHandler) Payments(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, h.auth, domain.RoleResident)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items := h.dues.PaymentsForUser(r.Context(), user.ID)
		writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
	case http.MethodPost:
		var req service.SubmitPaymentRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		p, err := h.dues.SubmitPayment(r.Context(), user, req)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ButtonConfig handles GET /resident/api/v1/payphone/button-config?amount=&reference=
// and returns what the hosted payment button needs (amounts in cents plus a
// fresh clientTransactionId).
func (h *ResidentHandler) ButtonConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, h.auth, domain.RoleResident)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		writeJSON(w, http.StatusOK, Fail("amount must be a positive number"))
		return
	}
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		reference = "Alícuota " + user.HouseNumber
	}
	writeJSON(w, http.StatusOK, Ok(h.confirmer.ButtonConfig(user, amount, reference)))
}

// PaymentResponse handles GET /resident/api/v1/payment-response?id=&clientTransactionId=
// — the landing call after the provider redirects the payer back. On an
// approved confirmation a pending payment is synthesized for the resident.
func (h *ResidentHandler) PaymentResponse(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, h.auth, domain.RoleResident)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	idParam := r.URL.Query().Get("id")
	clientTxID := r.URL.Query().Get("clientTransactionId")
	if idParam == "" || clientTxID == "" {
		writeJSON(w, http.StatusOK, Fail("Parámetros de transacción faltantes."))
		return
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("Parámetros de transacción faltantes."))
		return
	}

	result, err := h.confirmer.ConfirmAndRecord(r.Context(), user, service.ConfirmRequest{
		ID:                  id,
		ClientTransactionID: clientTxID,
	})
	if err != nil {
		h.logger.Warn("Payment confirmation failed",
			zap.String("client_tx_id", clientTxID),
			zap.Error(err),
		)
		var notApproved *service.NotApprovedError
		if errors.As(err, &notApproved) {
			writeJSON(w, http.StatusOK, Fail("La transacción no fue aprobada. Estado: "+notApproved.TransactionStatus))
			return
		}
		writeJSON(w, http.StatusOK, Fail("Ocurrió un error al verificar la transacción."))
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}
