package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Marks attendance, sees own reports
	RoleAdmin    Role = "admin"    // Sees statistics for every employee
)

// ValidRoles lists every role accepted at registration.
var ValidRoles = []string{string(RoleEmployee), string(RoleAdmin)}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can see organisation-wide statistics
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEmployee checks if user is counted in admin reports
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}
