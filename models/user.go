package models

// UserRole is carried in the "role" claim of access tokens. Users themselves
// are managed by the identity service.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)
