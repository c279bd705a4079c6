package module

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"gymdesk/internal/platform/config"
	"gymdesk/internal/services/api/staff/domain"
	staffsvc "gymdesk/internal/services/api/staff/service"
)

// Options controls sessions, hashing and the optional owner bootstrap
type Options struct {
	SessionTTL time.Duration
	BcryptCost int

	// Owner is created at start when both username and password are set
	Owner domain.OwnerInput
}

// FromConfig reads AUTH_* and OWNER_* values from the namespaced config
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("AUTH_")
	oc := cfg.Prefix("OWNER_")
	return Options{
		SessionTTL: ac.MayDuration("SESSION_TTL", staffsvc.DefaultSessionTTL),
		BcryptCost: ac.MayInt("BCRYPT_COST", bcrypt.DefaultCost),
		Owner: domain.OwnerInput{
			Username: oc.MayString("USERNAME", ""),
			Password: oc.MayString("PASSWORD", ""),
			Name:     oc.MayString("NAME", "Owner"),
			Email:    oc.MayString("EMAIL", ""),
		},
	}
}

// WantsOwner reports whether an owner bootstrap was configured
func (o Options) WantsOwner() bool { return o.Owner.Username != "" && o.Owner.Password != "" }
