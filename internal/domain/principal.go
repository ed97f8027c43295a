package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Principal аутентифицированный пользователь, разрешенный на границе запроса.
// Сервис доверяет этим данным - аутентификацию выполняет вышестоящий gateway.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin возвращает true, если пользователь - администратор
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ValidRole возвращает true для известной роли
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleAdmin
}
