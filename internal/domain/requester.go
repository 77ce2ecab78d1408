package domain

import "strings"

// Role роль пользователя, передаётся шлюзом в заголовке X-User-Role
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole разбирает роль; пустая или неизвестная роль считается студентом
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStaff, RoleAdmin:
		return r
	default:
		return RoleStudent
	}
}

// Requester кто выполняет запрос
type Requester struct {
	UserID int64
	Role   Role
}

// IsStaff true для сотрудников офиса и администраторов
func (r Requester) IsStaff() bool {
	return r.Role == RoleStaff || r.Role == RoleAdmin
}

// CanAccessUser true, если запрашивающий может видеть данные пользователя
func (r Requester) CanAccessUser(userID int64) bool {
	return r.IsStaff() || r.UserID == userID
}
