package model

// Role determines what a user may do. The set is fixed at seed time and
// read-only at runtime.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return true
	}
	return false
}

// User represents a system user
type User struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
