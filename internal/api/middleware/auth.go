package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Заголовки аутентификации, проставляемые gateway
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingAuth = "не указаны заголовки аутентификации"
	msgInvalidAuth = "некорректные заголовки аутентификации"
)

type principalContextKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает Principal из заголовков gateway и кладет его в контекст.
// Запросы без валидных заголовков отклоняются с 401: сервис доступен
// только через gateway, который выполняет аутентификацию.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get(HeaderUserID)
			roleStr := r.Header.Get(HeaderUserRole)

			if userIDStr == "" || roleStr == "" {
				logger.Warn("auth: missing headers: path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingAuth)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid user id %q: path=%s", userIDStr, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidAuth)
				return
			}

			role := domain.Role(roleStr)
			if !domain.ValidRole(role) {
				logger.Warn("auth: invalid role %q: path=%s", roleStr, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidAuth)
				return
			}

			principal := domain.Principal{UserID: userID, Role: role}
			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext возвращает Principal, положенный Auth middleware
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(domain.Principal)
	return p, ok
}
