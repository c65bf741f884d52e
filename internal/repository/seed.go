package repository

import "alicuotas-data/internal/domain"

// First-run fixtures. Fixed ids keep the demo accounts addressable across
// resets; the demo logins are superadmin/admin1/resident1.

func seedComplexes() []domain.Complex {
	return []domain.Complex{
		{ID: "c1", Name: "Conjunto Los Ceibos", Address: "Av. de los Ceibos 123, Quito"},
	}
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Username: "superadmin", Password: "superadmin123", Name: "Soporte Plataforma", Role: domain.RoleSuperAdmin},
		{ID: "u2", Username: "admin1", Password: "admin123", Name: "María González", Role: domain.RoleAdmin, ComplexID: "c1"},
		{ID: "u3", Username: "resident2", Password: "resident123", Name: "Carlos Andrade", Role: domain.RoleResident, ComplexID: "c1", HouseNumber: "B-203"},
		{ID: "u4", Username: "resident1", Password: "resident123", Name: "Juan Pérez", Role: domain.RoleResident, ComplexID: "c1", HouseNumber: "A-101"},
	}
}

func seedPayments() []domain.Payment {
	return []domain.Payment{
		{
			ID:           "2",
			UserID:       "u4",
			ComplexID:    "c1",
			ResidentName: "Juan Pérez",
			HouseNumber:  "A-101",
			Amount:       150.00,
			Date:         "2023-11-01",
			Reference:    "REF-789012",
			Status:       domain.PaymentPending,
		},
		{
			ID:           "1",
			UserID:       "u4",
			ComplexID:    "c1",
			ResidentName: "Juan Pérez",
			HouseNumber:  "A-101",
			Amount:       150.00,
			Date:         "2023-10-01",
			Reference:    "REF-123456",
			Status:       domain.PaymentApproved,
		},
	}
}
