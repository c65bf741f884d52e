package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/repository"

	"go.uber.org/zap"
)

// DuesService covers the three role-scoped dashboards: resident payment
// submission and history, admin review and resident provisioning, and
// superadmin complex/admin provisioning. All listings are in-memory filters
// over the store snapshots; there is no pagination by design.
type DuesService interface {
	// Resident
	PaymentsForUser(ctx context.Context, userID string) []domain.Payment
	SubmitPayment(ctx context.Context, user *domain.User, req SubmitPaymentRequest) (*domain.Payment, error)

	// Admin
	PaymentsForComplex(ctx context.Context, complexID string, status string) []domain.Payment
	ReviewPayment(ctx context.Context, id string, status domain.PaymentStatus) error
	ComplexSummary(ctx context.Context, complexID string) ComplexSummary
	ResidentsForComplex(ctx context.Context, complexID string) []domain.User
	CreateResident(ctx context.Context, complexID string, req CreateResidentRequest) (*domain.User, error)

	// Superadmin
	ListComplexes(ctx context.Context) []ComplexWithAdmins
	CreateComplex(ctx context.Context, name, address string) (*domain.Complex, error)
	CreateAdmin(ctx context.Context, complexID string, req CreateAdminRequest) (*domain.User, error)
}

type duesService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewDuesService(st *repository.Store, logger *zap.Logger) DuesService {
	return &duesService{store: st, logger: logger}
}

// SubmitPaymentRequest is a manual bank-deposit record entered by a resident.
type SubmitPaymentRequest struct {
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes,omitempty"`
}

type CreateResidentRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	HouseNumber string `json:"houseNumber"`
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ComplexSummary backs the admin dashboard stat cards. CollectedMonth sums
// approved payments only, dated in the current month.
type ComplexSummary struct {
	PendingCount   int     `json:"pendingCount"`
	CollectedMonth float64 `json:"collectedMonth"`
	ResidentCount  int     `json:"residentCount"`
}

// ComplexWithAdmins is the superadmin dashboard card: one complex plus the
// admin accounts assigned to it.
type ComplexWithAdmins struct {
	domain.Complex
	Admins []domain.User `json:"admins"`
}

func (s *duesService) PaymentsForUser(_ context.Context, userID string) []domain.Payment {
	out := []domain.Payment{}
	for _, p := range s.store.Payments() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (s *duesService) SubmitPayment(ctx context.Context, user *domain.User, req SubmitPaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if strings.TrimSpace(req.Reference) == "" {
		return nil, fmt.Errorf("reference is required")
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	p, err := s.store.AddPayment(ctx, domain.Payment{
		UserID:       user.ID,
		ComplexID:    user.ComplexID,
		ResidentName: user.Name,
		HouseNumber:  user.HouseNumber,
		Amount:       req.Amount,
		Date:         date,
		Reference:    strings.TrimSpace(req.Reference),
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &p, nil
}

func (s *duesService) PaymentsForComplex(_ context.Context, complexID string, status string) []domain.Payment {
	out := []domain.Payment{}
	for _, p := range s.store.Payments() {
		if p.ComplexID != complexID {
			continue
		}
		if status != "" && status != "all" && p.Status != domain.PaymentStatus(status) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *duesService) ReviewPayment(ctx context.Context, id string, status domain.PaymentStatus) error {
	if !status.Valid() || status == domain.PaymentPending {
		return fmt.Errorf("status must be approved or rejected")
	}
	return s.store.UpdatePaymentStatus(ctx, id, status)
}

func (s *duesService) ComplexSummary(ctx context.Context, complexID string) ComplexSummary {
	month := time.Now().Format("2006-01")
	sum := ComplexSummary{}
	for _, p := range s.store.Payments() {
		if p.ComplexID != complexID {
			continue
		}
		if p.Status == domain.PaymentPending {
			sum.PendingCount++
		}
		if p.Status == domain.PaymentApproved && strings.HasPrefix(p.Date, month) {
			sum.CollectedMonth += p.Amount
		}
	}
	sum.ResidentCount = len(s.ResidentsForComplex(ctx, complexID))
	return sum
}

func (s *duesService) ResidentsForComplex(_ context.Context, complexID string) []domain.User {
	out := []domain.User{}
	for _, u := range s.store.Users() {
		if u.Role == domain.RoleResident && u.ComplexID == complexID {
			out = append(out, u)
		}
	}
	return out
}

func (s *duesService) CreateResident(ctx context.Context, complexID string, req CreateResidentRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	u, err := s.store.AddUser(ctx, domain.User{
		Username:    strings.TrimSpace(req.Username),
		Password:    req.Password,
		Name:        req.Name,
		Role:        domain.RoleResident,
		ComplexID:   complexID,
		HouseNumber: req.HouseNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create resident: %w", err)
	}
	return &u, nil
}

func (s *duesService) ListComplexes(_ context.Context) []ComplexWithAdmins {
	users := s.store.Users()
	out := []ComplexWithAdmins{}
	for _, c := range s.store.Complexes() {
		item := ComplexWithAdmins{Complex: c, Admins: []domain.User{}}
		for _, u := range users {
			if u.Role == domain.RoleAdmin && u.ComplexID == c.ID {
				item.Admins = append(item.Admins, u)
			}
		}
		out = append(out, item)
	}
	return out
}

func (s *duesService) CreateComplex(ctx context.Context, name, address string) (*domain.Complex, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	c, err := s.store.AddComplex(ctx, strings.TrimSpace(name), strings.TrimSpace(address))
	if err != nil {
		return nil, fmt.Errorf("create complex: %w", err)
	}
	return &c, nil
}

func (s *duesService) CreateAdmin(ctx context.Context, complexID string, req CreateAdminRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	u, err := s.store.AddUser(ctx, domain.User{
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		Name:      req.Name,
		Role:      domain.RoleAdmin,
		ComplexID: complexID,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &u, nil
}
