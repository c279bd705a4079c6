package domain

// WalkIn describes a guest paying without registering
type WalkIn struct {
	Name string `json:"name" validate:"required,max=200" example:"Maria Santos"`
	Sex  string `json:"sex" validate:"omitempty,oneof=Male Female" example:"Female"`
}

// CreateInput records a payment for a member or a walk-in guest.
// Exactly one of MemberID and WalkIn must be set; Amount defaults to the plan price
type CreateInput struct {
	MemberID  string   `json:"member_id,omitempty" validate:"omitempty,max=20" example:"GYMA1B2C3D"`
	WalkIn    *WalkIn  `json:"walk_in,omitempty"`
	PricingID int64    `json:"pricing_id,omitempty" validate:"omitempty,min=1" example:"1"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,min=0" example:"500"`
	Method    string   `json:"payment_method" validate:"required,max=30" example:"Cash"`
	Reference *string  `json:"reference_number,omitempty" validate:"omitempty,max=100"`
	Remarks   *string  `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

// ListQuery filters transaction history. Dates are local calendar days, inclusive
type ListQuery struct {
	MemberID string `query:"member_id" json:"member_id" validate:"max=20"`
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=Completed Failed Refunded"`
	Method   string `query:"method" json:"method" validate:"max=30"`
	DateFrom string `query:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02" example:"2024-03-01"`
	DateTo   string `query:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02" example:"2024-03-31"`
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Size     int    `query:"size" json:"size" validate:"omitempty,min=1,max=100"`
}

// Paging defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one page of history plus the total match count
type Page struct {
	Items []Payment `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}
