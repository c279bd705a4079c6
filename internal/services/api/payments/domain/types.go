// Package domain holds payments, their methods and statuses
package domain

import (
	"context"
	"slices"
	"time"

	pricingdomain "gymdesk/internal/services/api/pricing/domain"
)

// Payment statuses
const (
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
	StatusRefunded  = "Refunded"
)

// Accepted payment methods
const (
	MethodCash         = "Cash"
	MethodGCash        = "GCash"
	MethodMaya         = "Maya"
	MethodGoTyme       = "GoTyme"
	MethodBankTransfer = "Bank Transfer"
	MethodPayPal       = "PayPal"
	MethodDebitCard    = "Debit Card"
	MethodCreditCard   = "Credit Card"
)

// Methods lists payment methods in display order
func Methods() []string {
	return []string{
		MethodCash, MethodGCash, MethodMaya, MethodGoTyme,
		MethodBankTransfer, MethodPayPal, MethodDebitCard, MethodCreditCard,
	}
}

// IsMethod reports whether m is an accepted method
func IsMethod(m string) bool { return slices.Contains(Methods(), m) }

// IsDigital reports whether m needs a reference number
func IsDigital(m string) bool { return IsMethod(m) && m != MethodCash }

// WalkInMemberID is stored for guests who pay without registering
const WalkInMemberID = "WALK-IN"

// Payment is one transaction. The stored_* fields snapshot the member and
// plan so history survives their deletion
type Payment struct {
	ID           string    `json:"id" example:"6b0f8c1e-8d0a-4bb8-9a57-2f7f5d8b7a10"`
	MemberPK     *int64    `json:"-"`
	MemberID     string    `json:"member_id" example:"GYMA1B2C3D"`
	MemberName   string    `json:"member_name"`
	PlanID       *int64    `json:"plan_id,omitempty"`
	PlanLabel    string    `json:"plan_label" example:"1 Month"`
	DurationDays int       `json:"duration_days" example:"30"`
	Amount       float64   `json:"amount" example:"500"`
	Method       string    `json:"payment_method" example:"GCash"`
	Reference    *string   `json:"reference_number,omitempty"`
	PaymentDate  time.Time `json:"payment_date"`
	Status       string    `json:"status" example:"Completed"`
	ProcessedBy  *int64    `json:"processed_by,omitempty"`
	Remarks      *string   `json:"remarks,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsWalkIn reports whether the payment belongs to an unregistered guest
func (p Payment) IsWalkIn() bool { return p.MemberID == WalkInMemberID }

// Renewal is the membership window a payment produced
type Renewal struct {
	MemberID  string    `json:"member_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Extended  bool      `json:"extended"`
}

// Receipt is the result of recording a payment
type Receipt struct {
	Payment    Payment  `json:"payment"`
	Membership *Renewal `json:"membership,omitempty"`
}

// PlanLookup resolves the plan a payment is for
type PlanLookup interface {
	Get(ctx context.Context, id int64) (pricingdomain.Plan, error)
}

// ServicePort is the payments contract
type ServicePort interface {
	Create(ctx context.Context, staffID string, in CreateInput) (Receipt, error)
	List(ctx context.Context, q ListQuery) (Page, error)
	Get(ctx context.Context, id string) (Payment, error)
	Refund(ctx context.Context, staffID, id string) (Payment, error)
}
