package domain

// Role is a named permission label.
type Role struct {
	ID   int64
	Name string
}

// RoleAdmin is required for mutating users and roles.
const RoleAdmin = "admin"

// RoleGrant is the outcome of a grant request.
type RoleGrant struct {
	// Granted holds the roles newly written by this call.
	Granted []Role
	// AlreadyHeld lists requested names the user had before the call.
	AlreadyHeld []string
	// Dropped lists requested names that matched no role.
	Dropped []string
}

// NoOp reports whether the call changed nothing.
func (g RoleGrant) NoOp() bool { return len(g.Granted) == 0 }

// NothingMatched reports whether no requested name was held or exists.
func (g RoleGrant) NothingMatched() bool {
	return len(g.Granted) == 0 && len(g.AlreadyHeld) == 0
}
