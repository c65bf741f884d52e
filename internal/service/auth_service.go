package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/repository"
	"alicuotas-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "alicuotas_session:"

// AuthService is the login/session gate. Sessions are serialized User records
// persisted in the KV backend with no signature and no expiry: hydrating a
// session trusts the stored identity without re-checking credentials, exactly
// the contract of the original local-storage session.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Session(ctx context.Context, sessionID string) (*domain.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	store  *repository.Store
	kv     store.KV
	logger *zap.Logger
}

func NewAuthService(st *repository.Store, kv store.KV, logger *zap.Logger) AuthService {
	return &authService{store: st, kv: kv, logger: logger}
}

// LoginRequest carries the submitted credentials. Plaintext comparison is the
// specified simulation behavior.
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse is the authenticated identity plus its role home path.
type LoginResponse struct {
	SessionID   string      `json:"sessionId"`
	UserID      string      `json:"userId"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	ComplexID   string      `json:"complexId,omitempty"`
	HouseNumber string      `json:"houseNumber,omitempty"`
	HomePath    string      `json:"homePath"`
}

var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// ErrNoSession is returned when a session id does not resolve to an identity.
var ErrNoSession = fmt.Errorf("no session")

// Login performs an exact-match scan over the user collection. A failed scan
// is indistinguishable from an unknown user: the caller only sees a generic
// invalid-credentials error, and any existing session is left untouched.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		s.logger.Warn("Login failed: missing credentials",
			zap.String("ip_address", req.IPAddress),
			zap.String("user_agent", req.UserAgent),
			zap.String("reason", "missing_credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	var found *domain.User
	for _, u := range s.store.Users() {
		if u.Username == username && u.Password == req.Password {
			found = &u
			break
		}
	}
	if found == nil {
		s.logger.Warn("Login failed: invalid credentials",
			zap.String("ip_address", req.IPAddress),
			zap.String("user_agent", req.UserAgent),
			zap.String("reason", "invalid_credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	raw, err := json.Marshal(found)
	if err != nil {
		return nil, fmt.Errorf("serialize session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+sessionID, string(raw)); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("Login succeeded",
		zap.String("user_id", found.ID),
		zap.String("role", string(found.Role)),
	)
	return &LoginResponse{
		SessionID:   sessionID,
		UserID:      found.ID,
		Username:    found.Username,
		Name:        found.Name,
		Role:        found.Role,
		ComplexID:   found.ComplexID,
		HouseNumber: found.HouseNumber,
		HomePath:    found.Role.HomePath(),
	}, nil
}

// Session hydrates the persisted identity for sessionID.
func (s *authService) Session(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	raw, err := s.kv.Get(ctx, sessionKeyPrefix+sessionID)
	if err == store.ErrMiss {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &u, nil
}

// Logout clears the persisted session. Unknown session ids are not an error.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.kv.Del(ctx, sessionKeyPrefix+sessionID)
}
