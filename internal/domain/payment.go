package domain

// PaymentStatus is the approval state of a dues payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// Payment is one dues payment record submitted by a resident and reviewed by
// the complex admin. ResidentName and HouseNumber are snapshots taken at
// submission time; only Status is ever mutated after creation.
type Payment struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	ComplexID    string        `json:"complexId"`
	ResidentName string        `json:"residentName"`
	HouseNumber  string        `json:"houseNumber"`
	Amount       float64       `json:"amount"`
	Date         string        `json:"date"` // YYYY-MM-DD
	Reference    string        `json:"reference"`
	Status       PaymentStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
}
