package httpapi

import (
	"bytes"
	"testing"

	"alicuotas-data/internal/domain"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGeneratePaymentsExport_RoundTrip(t *testing.T) {
	payments := []domain.Payment{
		{
			ResidentName: "Juan Pérez",
			HouseNumber:  "A-101",
			Amount:       150.00,
			Date:         "2023-10-01",
			Reference:    "REF-123456",
			Status:       domain.PaymentApproved,
		},
		{
			ResidentName: "Carlos Andrade",
			HouseNumber:  "B-203",
			Amount:       80.50,
			Date:         "2023-11-15",
			Reference:    "REF-555",
			Status:       domain.PaymentPending,
			Notes:        "transferencia",
		},
	}

	raw, err := GeneratePaymentsExport(payments)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, PaymentsExportHeader, rows[0])
	require.Equal(t, "Juan Pérez", rows[1][0])
	require.Equal(t, "approved", rows[1][5])
	require.Equal(t, "transferencia", rows[2][6])
}

func TestGeneratePaymentsExport_EmptyTable(t *testing.T) {
	raw, err := GeneratePaymentsExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
