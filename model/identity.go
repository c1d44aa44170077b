package model

type Role string

const (
	RoleSeller Role = "Seller"
	RoleBuyer  Role = "Buyer"
)

// ParseRole accepts only the two known role claims.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSeller:
		return RoleSeller, true
	case RoleBuyer:
		return RoleBuyer, true
	}

	return "", false
}

// Identity is the verified caller as supplied by the gateway.
type Identity struct {
	ID   string
	Role Role
}
