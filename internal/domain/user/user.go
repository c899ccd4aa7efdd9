package user

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleStudent, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}
