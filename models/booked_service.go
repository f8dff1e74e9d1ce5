package models

import "time"

// PaymentStatus moves one way, from pending to completed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// BookedService is a customer's booking of a service, created once a checkout
// session exists for it.
type BookedService struct {
	ID               string        `bson:"id" json:"id"`
	UserID           string        `bson:"userId" json:"userId"`
	UserEmail        string        `bson:"userEmail" json:"userEmail"`
	AssignedWorkerID string        `bson:"assignedWorkerId,omitempty" json:"assignedWorkerId,omitempty"`
	Name             string        `bson:"name" json:"name"`
	Description      string        `bson:"description" json:"description"`
	Summary          string        `bson:"summary" json:"summary"`
	UnitPriceCents   int64         `bson:"unitPriceCents" json:"unitPriceCents"`
	TotalPriceCents  int64         `bson:"totalPriceCents" json:"totalPriceCents"`
	Quantity         int           `bson:"quantity" json:"quantity"`
	PaymentStatus    PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	Confirmed        bool          `bson:"confirmed" json:"confirmed"`
	StripeSessionID  string        `bson:"stripeSessionId" json:"stripeSessionId"`
	PaymentIntentID  string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// TotalPrice returns the total formatted with two decimals.
func (b BookedService) TotalPrice() string {
	return FormatCents(b.TotalPriceCents)
}

func (b BookedService) IsPaid() bool {
	return b.PaymentStatus == PaymentCompleted
}
