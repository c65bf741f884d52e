package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alicuotas-data/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentConfirmer verifies a redirect back from the payment provider and, on
// approval, synthesizes a pending dues payment for the redirected resident.
type PaymentConfirmer interface {
	ButtonConfig(user *domain.User, amount float64, reference string) ButtonConfig
	ConfirmAndRecord(ctx context.Context, user *domain.User, req ConfirmRequest) (*ConfirmResult, error)
}

// Confirmer is the slice of PayPhoneClient the service needs; narrowed for
// test doubles.
type Confirmer interface {
	Confirm(ctx context.Context, id int, clientTxID string) (*PayPhoneConfirmResponse, error)
}

type paymentConfirmService struct {
	client  Confirmer
	dues    DuesService
	storeID string
	logger  *zap.Logger

	mu   sync.Mutex
	seen map[string]bool // clientTxID -> already confirmed this process
}

func NewPaymentConfirmService(client Confirmer, dues DuesService, storeID string, logger *zap.Logger) PaymentConfirmer {
	return &paymentConfirmService{
		client:  client,
		dues:    dues,
		storeID: storeID,
		logger:  logger,
		seen:    map[string]bool{},
	}
}

// ButtonConfig is what the resident page needs to render the hosted payment
// button widget. All monetary fields are cents; tax fields stay zero.
type ButtonConfig struct {
	StoreID             string `json:"storeId"`
	ClientTransactionID string `json:"clientTransactionId"`
	Amount              int64  `json:"amount"`
	AmountWithoutTax    int64  `json:"amountWithoutTax"`
	Tax                 int64  `json:"tax"`
	Currency            string `json:"currency"`
	Reference           string `json:"reference"`
}

// NotApprovedError reports a confirmation the provider settled as anything
// other than approved.
type NotApprovedError struct {
	TransactionStatus string
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("transaction not approved: %s", e.TransactionStatus)
}

// ConfirmRequest carries the two redirect parameters the provider appends.
type ConfirmRequest struct {
	ID                  int
	ClientTransactionID string
}

// ConfirmResult is the confirmation detail surfaced to the resident plus the
// recorded payment, when one was synthesized.
type ConfirmResult struct {
	AmountDollars     float64         `json:"amount"`
	TransactionID     int64           `json:"transactionId"`
	AuthorizationCode string          `json:"authorizationCode"`
	Reference         string          `json:"reference"`
	Payment           *domain.Payment `json:"payment,omitempty"`
}

func (s *paymentConfirmService) ButtonConfig(user *domain.User, amount float64, reference string) ButtonConfig {
	cents := int64(amount*100 + 0.5)
	return ButtonConfig{
		StoreID:             s.storeID,
		ClientTransactionID: uuid.NewString(),
		Amount:              cents,
		AmountWithoutTax:    cents,
		Tax:                 0,
		Currency:            "USD",
		Reference:           reference,
	}
}

// ConfirmAndRecord runs the one-shot verification. A best-effort in-process
// guard keyed by clientTransactionId stops the same redirect being confirmed
// twice; it does not survive a restart, matching the page-lifetime flag of
// the original flow.
func (s *paymentConfirmService) ConfirmAndRecord(ctx context.Context, user *domain.User, req ConfirmRequest) (*ConfirmResult, error) {
	if req.ClientTransactionID == "" {
		return nil, fmt.Errorf("missing transaction parameters")
	}

	s.mu.Lock()
	if s.seen[req.ClientTransactionID] {
		s.mu.Unlock()
		s.logger.Warn("Duplicate confirmation attempt",
			zap.String("client_tx_id", req.ClientTransactionID),
		)
		return nil, fmt.Errorf("transaction already processed")
	}
	s.seen[req.ClientTransactionID] = true
	s.mu.Unlock()

	resp, err := s.client.Confirm(ctx, req.ID, req.ClientTransactionID)
	if err != nil {
		// allow a manual re-attempt after a network/parse failure
		s.mu.Lock()
		delete(s.seen, req.ClientTransactionID)
		s.mu.Unlock()
		return nil, err
	}
	if !resp.Approved() {
		return nil, &NotApprovedError{TransactionStatus: resp.TransactionStatus}
	}

	result := &ConfirmResult{
		AmountDollars:     float64(resp.Amount) / 100,
		TransactionID:     resp.TransactionID,
		AuthorizationCode: resp.AuthorizationCode,
		Reference:         resp.Reference,
	}

	p, err := s.dues.SubmitPayment(ctx, user, SubmitPaymentRequest{
		Amount:    result.AmountDollars,
		Date:      time.Now().Format("2006-01-02"),
		Reference: fmt.Sprintf("PayPhone - %d", resp.TransactionID),
	})
	if err != nil {
		s.logger.Error("Payment verified but could not be recorded",
			zap.String("client_tx_id", req.ClientTransactionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("record confirmed payment: %w", err)
	}
	result.Payment = p
	return result, nil
}
