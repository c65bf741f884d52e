package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alicuotas-data/internal/repository"
	"alicuotas-data/internal/service"
	"alicuotas-data/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConfirmer replays a fixed provider response.
type fakeConfirmer struct {
	resp *service.PayPhoneConfirmResponse
	err  error
}

func (f *fakeConfirmer) Confirm(_ context.Context, _ int, _ string) (*service.PayPhoneConfirmResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type testEnv struct {
	router *Router
	store  *repository.Store
}

func setupTestEnv(t *testing.T, confirmer service.Confirmer) *testEnv {
	logger := zap.NewNop()
	kv := store.NewMemoryKV()
	st, err := repository.Open(context.Background(), kv, logger)
	require.NoError(t, err)

	auth := service.NewAuthService(st, kv, logger)
	dues := service.NewDuesService(st, logger)
	if confirmer == nil {
		confirmer = &fakeConfirmer{}
	}
	confirm := service.NewPaymentConfirmService(confirmer, dues, "store-1", logger)

	router := NewRouter(logger)
	router.RegisterAuthRoutes(NewAuthHandler(auth, logger))
	router.RegisterResidentRoutes(NewResidentHandler(auth, dues, confirm, logger))
	router.RegisterAdminRoutes(NewAdminHandler(auth, dues, logger))
	router.RegisterSuperAdminRoutes(NewSuperAdminHandler(auth, dues, logger))

	return &testEnv{router: router, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reqBody)
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doBearer(t *testing.T, method, path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, &bytes.Buffer{})
	req.Header.Set("Authorization", "Bearer "+sessionID)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login returns the session id for one of the seeded accounts.
func (e *testEnv) login(t *testing.T, username, password string) string {
	rec := e.do(t, http.MethodPost, "/auth/api/v1/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope Result[service.LoginResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, ResultSuccess, envelope.Code)
	require.NotEmpty(t, envelope.Result.SessionID)
	return envelope.Result.SessionID
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) Result[T] {
	var envelope Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}
