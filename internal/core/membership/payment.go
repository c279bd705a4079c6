package membership

// Method is how a payment was settled
type Method string

// Accepted payment methods
const (
	Cash         Method = "Cash"
	GCash        Method = "GCash"
	Maya         Method = "Maya"
	GoTyme       Method = "GoTyme"
	BankTransfer Method = "Bank Transfer"
	PayPal       Method = "PayPal"
	DebitCard    Method = "Debit Card"
	CreditCard   Method = "Credit Card"
)

// Methods lists every method in display order
func Methods() []Method {
	return []Method{Cash, GCash, Maya, GoTyme, BankTransfer, PayPal, DebitCard, CreditCard}
}

// ParseMethod matches an exact method name
func ParseMethod(s string) (Method, bool) {
	for _, m := range Methods() {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Digital reports whether the method needs a reference number
func (m Method) Digital() bool { return m != Cash }

// PaymentStatus is the lifecycle state of a payment
type PaymentStatus string

// Payment statuses
const (
	Completed PaymentStatus = "Completed"
	Failed    PaymentStatus = "Failed"
	Refunded  PaymentStatus = "Refunded"
)

// WalkInID is stored in place of a member id for guest payments
const WalkInID = "WALK-IN"
