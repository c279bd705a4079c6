package domain

// MinPasswordLen is the shortest accepted password
const MinPasswordLen = 8

// CreateInput adds a Staff role account
type CreateInput struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"frontdesk"`
	Name     string `json:"name" validate:"required,max=150" example:"Front Desk"`
	Email    string `json:"email" validate:"required,email,max=254" example:"desk@example.com"`
	Phone    string `json:"phone" validate:"max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateInput changes contact fields of an account
type UpdateInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// Empty reports whether the patch changes nothing
func (u UpdateInput) Empty() bool { return u.Name == nil && u.Email == nil && u.Phone == nil }

// LoginInput exchanges credentials for a session token
type LoginInput struct {
	Username string `json:"username" validate:"required,max=50" example:"owner"`
	Password string `json:"password" validate:"required,max=72"`
}

// OwnerInput bootstraps the owner account
type OwnerInput struct {
	Username string
	Password string
	Name     string
	Email    string
}
