package constants

// Roles as stored by the backend
const (
	RoleUser  = "user"
	RoleRider = "rider"
	RoleAdmin = "admin"
)

// Cookie names for the identity provider session
const (
	CookieAccess  = "access"
	CookieRefresh = "refresh"
)

// Fallback routes used by the role guard and session expiry
const (
	RouteForbidden = "/forbidden"
	RouteLogin     = "/login"
)

// Locals keys set by middleware
const (
	LocalsIdentity  = "identity"
	LocalsRole      = "role"
	LocalsToken     = "token"
	LocalsRequestID = "request_id"
)

// AllRoles lists every role the backend may return.
var AllRoles = []string{
	RoleUser,
	RoleRider,
	RoleAdmin,
}

// PhonePattern accepts 01xxxxxxxxx or +8801xxxxxxxxx
const PhonePattern = `^(?:\+88)?01[0-9]{9}$`

// HeaderRequestID is echoed on every response
const HeaderRequestID = "X-Request-ID"
