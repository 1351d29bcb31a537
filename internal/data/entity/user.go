package entity

import "fmt"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleDev   UserRole = "dev"
	RoleUser  UserRole = "user"
)

// ParseUserRole memetakan string role dari database/request ke enum tertutup.
// Nilai tak dikenal = error (fail closed), jangan diteruskan sebagai string mentah.
func ParseUserRole(value string) (UserRole, error) {
	switch value {
	case "admin":
		return RoleAdmin, nil
	case "dev":
		return RoleDev, nil
	case "user":
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown user role: %s", value)
	}
}

func (r UserRole) Valid() bool {
	_, err := ParseUserRole(string(r))
	return err == nil
}

type User struct {
	BaseSimple
	Email              string   `db:"email"`
	PasswordHash       string   `db:"password_hash"`
	Role               UserRole `db:"role"`
	MustChangePassword bool     `db:"must_change_password"`
}
