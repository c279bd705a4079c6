package domain

// Staff roles. Owners manage staff, pricing and refunds
const (
	RoleOwner = "Owner"
	RoleStaff = "Staff"
)
