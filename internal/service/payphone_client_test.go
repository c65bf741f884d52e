package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPayPhoneClient_ConfirmApproved(t *testing.T) {
	var gotAuth string
	var gotBody PayPhoneConfirmRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/button/V2/Confirm", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PayPhoneConfirmResponse{
			StatusCode:        3,
			Amount:            15000,
			TransactionID:     987654,
			AuthorizationCode: "AUTH-1",
			Reference:         "Alícuota A-101",
			TransactionStatus: "Approved",
		})
	}))
	defer srv.Close()

	client := NewPayPhoneClient(srv.URL, "test-token", zap.NewNop())
	resp, err := client.Confirm(context.Background(), 42, "ctx-1")
	require.NoError(t, err)

	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, 42, gotBody.ID)
	require.Equal(t, "ctx-1", gotBody.ClientTxID)

	require.True(t, resp.Approved())
	require.Equal(t, int64(15000), resp.Amount)
	require.Equal(t, int64(987654), resp.TransactionID)
}

func TestPayPhoneClient_ConfirmDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PayPhoneConfirmResponse{
			StatusCode:        2,
			TransactionStatus: "Canceled",
		})
	}))
	defer srv.Close()

	client := NewPayPhoneClient(srv.URL, "test-token", zap.NewNop())
	resp, err := client.Confirm(context.Background(), 42, "ctx-2")
	require.NoError(t, err)
	require.False(t, resp.Approved())
	require.Equal(t, "Canceled", resp.TransactionStatus)
}

func TestPayPhoneClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewPayPhoneClient(srv.URL, "test-token", zap.NewNop())
	_, err := client.Confirm(context.Background(), 42, "ctx-3")
	require.Error(t, err)
}

func TestPayPhoneClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewPayPhoneClient(srv.URL, "test-token", zap.NewNop())
	_, err := client.Confirm(context.Background(), 42, "ctx-4")
	require.Error(t, err)
}
