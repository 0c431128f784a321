package types

const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// TimeFormat is the stamp written to last_login.
const TimeFormat = "2006-01-02 15:04"

// User is one login identity. Password is stored in the clear; the persisted
// layout fixes it as a plaintext string and login compares byte for byte.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Password  string `json:"password"`
	LastLogin string `json:"last_login"`
}

// Redacted returns a copy safe for API responses.
func (u User) Redacted() User {
	u.Password = ""
	return u
}
