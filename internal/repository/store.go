package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage keys. Kept aligned with the original front-end local storage keys so
// a migrated state dump stays readable.
const (
	keyComplexes = "alicuotas_app_complexes"
	keyUsers     = "alicuotas_app_users"
	keyPayments  = "alicuotas_app_payments"
)

// Store owns the three persisted collections (complexes, users, payments).
// On Open each collection is loaded wholesale into memory, seeding fixture
// data on first run; every mutator re-serializes the whole affected
// collection back to the KV backend. Callers get snapshot copies only.
type Store struct {
	mu     sync.RWMutex
	kv     store.KV
	logger *zap.Logger

	complexes []domain.Complex
	users     []domain.User
	payments  []domain.Payment
}

// Open loads the collections from kv, writing the seed value for any
// collection that is absent.
func Open(ctx context.Context, kv store.KV, logger *zap.Logger) (*Store, error) {
	s := &Store{kv: kv, logger: logger}
	if err := loadOrSeed(ctx, kv, keyComplexes, &s.complexes, seedComplexes); err != nil {
		return nil, fmt.Errorf("load complexes: %w", err)
	}
	if err := loadOrSeed(ctx, kv, keyUsers, &s.users, seedUsers); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if err := loadOrSeed(ctx, kv, keyPayments, &s.payments, seedPayments); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	logger.Info("Store opened",
		zap.Int("complexes", len(s.complexes)),
		zap.Int("users", len(s.users)),
		zap.Int("payments", len(s.payments)),
	)
	return s, nil
}

func loadOrSeed[T any](ctx context.Context, kv store.KV, key string, dst *[]T, seed func() []T) error {
	raw, err := kv.Get(ctx, key)
	if err == store.ErrMiss {
		*dst = seed()
		return persist(ctx, kv, key, *dst)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dst)
}

func persist[T any](ctx context.Context, kv store.KV, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(raw))
}

// Complexes returns a snapshot of all complexes.
func (s *Store) Complexes() []domain.Complex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Complex, len(s.complexes))
	copy(out, s.complexes)
	return out
}

// Users returns a snapshot of all users.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Payments returns a snapshot of all payments, most recent first.
func (s *Store) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// AddComplex appends a new complex with a freshly generated id.
func (s *Store) AddComplex(ctx context.Context, name, address string) (domain.Complex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Complex{
		ID:      uuid.NewString(),
		Name:    name,
		Address: address,
	}
	s.complexes = append(s.complexes, c)
	if err := persist(ctx, s.kv, keyComplexes, s.complexes); err != nil {
		return domain.Complex{}, err
	}
	s.logger.Info("Complex created", zap.String("complex_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// AddUser appends a new user with a freshly generated id. No uniqueness or
// referential validation is performed; the caller owns any such checks.
func (s *Store) AddUser(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = uuid.NewString()
	s.users = append(s.users, u)
	if err := persist(ctx, s.kv, keyUsers, s.users); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("User created",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
		zap.String("complex_id", u.ComplexID),
	)
	return u, nil
}

// AddPayment prepends a new payment (most recent first) with a freshly
// generated id and status forced to pending regardless of input.
func (s *Store) AddPayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	p.Status = domain.PaymentPending
	s.payments = append([]domain.Payment{p}, s.payments...)
	if err := persist(ctx, s.kv, keyPayments, s.payments); err != nil {
		return domain.Payment{}, err
	}
	s.logger.Info("Payment recorded",
		zap.String("payment_id", p.ID),
		zap.String("user_id", p.UserID),
		zap.Float64("amount", p.Amount),
	)
	return p, nil
}

// UpdatePaymentStatus replaces the status of the payment matching id.
// A non-matching id is a silent no-op, mirroring the store contract.
func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i].Status = status
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	if err := persist(ctx, s.kv, keyPayments, s.payments); err != nil {
		return err
	}
	s.logger.Info("Payment status updated",
		zap.String("payment_id", id),
		zap.String("status", string(status)),
	)
	return nil
}
