package domain

// CreateInput registers a new member. The membership starts inactive
// with today's dates and no fee until the first payment
type CreateInput struct {
	Name             string  `json:"name" validate:"required,max=200" example:"Juan Dela Cruz"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email,max=254" example:"juan@example.com"`
	Phone            string  `json:"phone" validate:"required,max=20" example:"09171234567"`
	Sex              string  `json:"sex" validate:"required,oneof=Male Female" example:"Female"`
	Address          string  `json:"address" validate:"max=500"`
	EmergencyContact string  `json:"emergency_contact" validate:"max=200"`
	EmergencyPhone   string  `json:"emergency_phone" validate:"max=20"`
}

// UpdateInput changes contact details. Name, sex, dates and fee are not editable here
type UpdateInput struct {
	Email            *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address          *string `json:"address,omitempty" validate:"omitempty,max=500"`
	EmergencyContact *string `json:"emergency_contact,omitempty" validate:"omitempty,max=200"`
	EmergencyPhone   *string `json:"emergency_phone,omitempty" validate:"omitempty,max=20"`
}

// Empty reports whether the patch changes nothing
func (u UpdateInput) Empty() bool {
	return u.Email == nil && u.Phone == nil && u.Address == nil &&
		u.EmergencyContact == nil && u.EmergencyPhone == nil
}

// ListQuery filters the member list
type ListQuery struct {
	Filter string `query:"filter" json:"filter" validate:"omitempty,oneof=all active expiring expired inactive" example:"active"`
	Q      string `query:"q" json:"q" validate:"max=100" example:"dela cruz"`
}

// ListResult is the member list with header totals
type ListResult struct {
	Members []View `json:"members"`
	Totals  Totals `json:"totals"`
}

// SearchQuery drives the quick search used by the check-in and payment forms
type SearchQuery struct {
	Q      string `query:"q" json:"q" validate:"max=100" example:"juan"`
	Active bool   `query:"active" json:"active"`
}

// MinSearchLen is the shortest folded query that triggers a search
const MinSearchLen = 2

// SearchLimit caps the number of search hits
const SearchLimit = 10
