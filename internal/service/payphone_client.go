package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// payphoneStatusApproved is the transaction statusCode the provider returns
// for an approved payment.
const payphoneStatusApproved = 3

// PayPhoneConfirmRequest is the confirmation body keyed by the redirect
// parameters the provider appends when sending the payer back.
type PayPhoneConfirmRequest struct {
	ID         int    `json:"id"`
	ClientTxID string `json:"clientTxId"`
}

// PayPhoneConfirmResponse is the subset of the provider response this system
// inspects. Amount is in cents.
type PayPhoneConfirmResponse struct {
	StatusCode        int    `json:"statusCode"`
	Amount            int64  `json:"amount"`
	TransactionID     int64  `json:"transactionId"`
	AuthorizationCode string `json:"authorizationCode"`
	Reference         string `json:"reference"`
	TransactionStatus string `json:"transactionStatus"`
}

// Approved reports whether the provider settled the transaction.
func (r *PayPhoneConfirmResponse) Approved() bool {
	return r.StatusCode == payphoneStatusApproved
}

// PayPhoneClient talks to the hosted payment-button confirmation endpoint.
// The provider's protocol is an external contract this code does not own.
type PayPhoneClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewPayPhoneClient creates a confirmation client. The confirmation call is
// one-shot: no automatic retries, a declined or failed confirmation is
// terminal for the current attempt.
func NewPayPhoneClient(baseURL, token string, logger *zap.Logger) *PayPhoneClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &PayPhoneClient{httpClient: client, logger: logger}
}

// Confirm verifies one transaction against the provider.
func (c *PayPhoneClient) Confirm(ctx context.Context, id int, clientTxID string) (*PayPhoneConfirmResponse, error) {
	c.logger.Info("Calling PayPhone confirm",
		zap.Int("transaction_id", id),
		zap.String("client_tx_id", clientTxID),
	)

	var response PayPhoneConfirmResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(PayPhoneConfirmRequest{ID: id, ClientTxID: clientTxID}).
		SetResult(&response).
		Post("/api/button/V2/Confirm")
	if err != nil {
		c.logger.Error("PayPhone confirm call failed", zap.Error(err))
		return nil, fmt.Errorf("failed to call PayPhone confirm: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("PayPhone confirm returned error status",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("PayPhone confirm error: HTTP %d", resp.StatusCode())
	}

	c.logger.Info("PayPhone confirm response",
		zap.Int("status_code", response.StatusCode),
		zap.String("transaction_status", response.TransactionStatus),
		zap.Int64("amount_cents", response.Amount),
	)
	return &response, nil
}
