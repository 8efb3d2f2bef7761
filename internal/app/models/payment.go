package models

import "time"

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Label is the short badge text shown in the transactions table.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentCompleted:
		return "Success"
	case PaymentCancelled:
		return "Canceled"
	case PaymentFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

type Party struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Transaction struct {
	ID        string        `json:"id"`
	Student   *Party        `json:"student,omitempty"`
	Teacher   *Party        `json:"teacher,omitempty"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Provider  string        `json:"provider"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PaymentStats struct {
	TotalRevenue   float64       `json:"totalRevenue"`
	CompletedCount int           `json:"completedCount"`
	PendingAmount  float64       `json:"pendingAmount"`
	PendingCount   int           `json:"pendingCount"`
	CancelledCount int           `json:"cancelledCount"`
	Transactions   []Transaction `json:"transactions"`
}
