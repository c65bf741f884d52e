package service

import (
	"context"
	"testing"
	"time"

	"alicuotas-data/internal/domain"
	"alicuotas-data/internal/repository"
	"alicuotas-data/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDues(t *testing.T) (DuesService, *repository.Store) {
	st, err := repository.Open(context.Background(), store.NewMemoryKV(), zap.NewNop())
	require.NoError(t, err)
	return NewDuesService(st, zap.NewNop()), st
}

func seededResident(t *testing.T, st *repository.Store, id string) *domain.User {
	for _, u := range st.Users() {
		if u.ID == id {
			return &u
		}
	}
	t.Fatalf("user %s not in seed", id)
	return nil
}

func TestSubmitPayment_ResidentScenario(t *testing.T) {
	dues, st := setupDues(t)
	ctx := context.Background()
	resident := seededResident(t, st, "u4")

	p, err := dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{
		Amount:    150.00,
		Date:      "2023-12-01",
		Reference: "REF-999",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPending, p.Status)
	require.Equal(t, "c1", p.ComplexID)
	require.Equal(t, "Juan Pérez", p.ResidentName)
	require.Equal(t, "A-101", p.HouseNumber)

	mine := dues.PaymentsForUser(ctx, "u4")
	require.Len(t, mine, 3) // two seeded + the new one
	require.Equal(t, p.ID, mine[0].ID)
	require.Equal(t, domain.PaymentPending, mine[0].Status)
}

func TestSubmitPayment_Validation(t *testing.T) {
	dues, st := setupDues(t)
	resident := seededResident(t, st, "u4")
	ctx := context.Background()

	_, err := dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{Amount: 0, Reference: "R"})
	require.Error(t, err)

	_, err = dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{Amount: -5, Reference: "R"})
	require.Error(t, err)

	_, err = dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{Amount: 10, Reference: "  "})
	require.Error(t, err)
}

func TestSubmitPayment_DefaultsDateToToday(t *testing.T) {
	dues, st := setupDues(t)
	resident := seededResident(t, st, "u4")

	p, err := dues.SubmitPayment(context.Background(), resident, SubmitPaymentRequest{
		Amount:    80,
		Reference: "REF-TODAY",
	})
	require.NoError(t, err)
	require.Equal(t, time.Now().Format("2006-01-02"), p.Date)
}

func TestPaymentsForComplex_StatusFilter(t *testing.T) {
	dues, _ := setupDues(t)
	ctx := context.Background()

	all := dues.PaymentsForComplex(ctx, "c1", "all")
	require.Len(t, all, 2)

	pending := dues.PaymentsForComplex(ctx, "c1", "pending")
	require.Len(t, pending, 1)
	require.Equal(t, "2", pending[0].ID)

	approved := dues.PaymentsForComplex(ctx, "c1", "approved")
	require.Len(t, approved, 1)
	require.Equal(t, "1", approved[0].ID)

	require.Empty(t, dues.PaymentsForComplex(ctx, "other-complex", ""))
}

func TestReviewPayment_Transitions(t *testing.T) {
	dues, st := setupDues(t)
	ctx := context.Background()

	require.NoError(t, dues.ReviewPayment(ctx, "2", domain.PaymentApproved))
	require.Equal(t, domain.PaymentApproved, st.Payments()[0].Status)

	// re-approving an approved payment is an idempotent no-op
	before := st.Payments()
	require.NoError(t, dues.ReviewPayment(ctx, "1", domain.PaymentApproved))
	require.Equal(t, before, st.Payments())

	// pending is not a review outcome
	require.Error(t, dues.ReviewPayment(ctx, "1", domain.PaymentPending))
	require.Error(t, dues.ReviewPayment(ctx, "1", domain.PaymentStatus("bogus")))
}

func TestComplexSummary_ApprovedOnlyCurrentMonth(t *testing.T) {
	dues, st := setupDues(t)
	ctx := context.Background()
	resident := seededResident(t, st, "u4")

	// one approved payment dated this month, one left pending
	p1, err := dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{Amount: 120, Reference: "REF-A"})
	require.NoError(t, err)
	require.NoError(t, dues.ReviewPayment(ctx, p1.ID, domain.PaymentApproved))

	_, err = dues.SubmitPayment(ctx, resident, SubmitPaymentRequest{Amount: 75, Reference: "REF-B"})
	require.NoError(t, err)

	sum := dues.ComplexSummary(ctx, "c1")
	// seeded pending payment + REF-B
	require.Equal(t, 2, sum.PendingCount)
	// only the approved current-month payment counts; the seeded approved
	// payment is dated 2023-10 and stays out
	require.InDelta(t, 120.0, sum.CollectedMonth, 0.001)
	require.Equal(t, 2, sum.ResidentCount)
}

func TestResidentProvisioning(t *testing.T) {
	dues, st := setupDues(t)
	ctx := context.Background()

	u, err := dues.CreateResident(ctx, "c1", CreateResidentRequest{
		Username:    "resident3",
		Password:    "secret",
		Name:        "Lucía Mora",
		HouseNumber: "C-305",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleResident, u.Role)
	require.Equal(t, "c1", u.ComplexID)
	require.NotEmpty(t, u.ID)

	residents := dues.ResidentsForComplex(ctx, "c1")
	require.Len(t, residents, 3)

	_, err = dues.CreateResident(ctx, "c1", CreateResidentRequest{Username: "", Password: "x"})
	require.Error(t, err)
	require.Len(t, st.Users(), 5)
}

func TestComplexProvisioning(t *testing.T) {
	dues, _ := setupDues(t)
	ctx := context.Background()

	c, err := dues.CreateComplex(ctx, "Conjunto Norte", "Calle 10 y Av. Quito")
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	admin, err := dues.CreateAdmin(ctx, c.ID, CreateAdminRequest{
		Username: "admin2",
		Password: "admin456",
		Name:     "Pedro Salazar",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, c.ID, admin.ComplexID)

	listed := dues.ListComplexes(ctx)
	require.Len(t, listed, 2)
	for _, item := range listed {
		switch item.ID {
		case "c1":
			require.Len(t, item.Admins, 1)
			require.Equal(t, "u2", item.Admins[0].ID)
		case c.ID:
			require.Len(t, item.Admins, 1)
			require.Equal(t, admin.ID, item.Admins[0].ID)
		}
	}

	_, err = dues.CreateComplex(ctx, "   ", "addr")
	require.Error(t, err)
}
