package domain

// BootstrapData seeds an empty installation: the roles to create and the
// first administrator, who is granted RoleAdmin.
type BootstrapData struct {
	Admin NewUser
	Roles []string
}

type BootstrapResult struct {
	Admin User
	Roles []Role
}
