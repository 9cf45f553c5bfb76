package constants

// Account roles carried in the bearer token.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Roles allowed to manage templates, campaigns and role profiles.
var AdminAndAbove = []string{RoleOwner, RoleAdmin}

// Roles allowed to read campaign stats and team progress.
var ManagerAndAbove = []string{RoleOwner, RoleAdmin, RoleManager}
