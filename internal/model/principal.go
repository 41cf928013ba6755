package model

// Role is the portal role of an authenticated user.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated actor of the current session.
type Principal struct {
	// ID is the backend's numeric identifier for the user.
	ID int64 `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`

	// Role determines which dashboard and record screens are available.
	Role Role `json:"role"`

	// ProfileImage is an optional URL to the user's avatar.
	ProfileImage string `json:"profile_image,omitempty"`

	// Token is the bearer credential presented to the backend. It is
	// never written to the session database; it lives in the OS keyring.
	Token string `json:"-"`

	// Authenticated is true once a login has succeeded and until logout
	// or detected credential expiry.
	Authenticated bool `json:"-"`
}
