package role

import "parcel-delivery/constants"

// Guard is what a caller may see: nobody, or one of the three roles.
type Guard int

const (
	Guest Guard = iota
	Customer
	Rider
	Admin
)

// GuardFor maps a resolved role; anything unrecognised is a customer.
func GuardFor(role string, signedIn bool) Guard {
	if !signedIn {
		return Guest
	}
	switch role {
	case constants.RoleAdmin:
		return Admin
	case constants.RoleRider:
		return Rider
	default:
		return Customer
	}
}

// Role is the backend role name, empty for a guest.
func (g Guard) Role() string {
	switch g {
	case Customer:
		return constants.RoleUser
	case Rider:
		return constants.RoleRider
	case Admin:
		return constants.RoleAdmin
	default:
		return ""
	}
}

func (g Guard) String() string {
	if g == Guest {
		return "guest"
	}
	return g.Role()
}

// Allows with no roles only requires a signed-in caller.
func (g Guard) Allows(required ...string) bool {
	if g == Guest {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == g.Role() {
			return true
		}
	}
	return false
}
