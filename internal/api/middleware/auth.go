package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgStaffOnly     = "доступно только сотрудникам"
)

type contextKey string

const requesterKey contextKey = "requester"

// Auth достаёт пользователя из заголовков шлюза и кладёт его в контекст
// Роль без заголовка или с неизвестным значением считается student
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		requester := domain.Requester{
			UserID: userID,
			Role:   domain.ParseRole(r.Header.Get(HeaderUserRole)),
		}

		next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), requester)))
	})
}

// RequireStaff пропускает только сотрудников и администраторов
// Ставится после Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := GetRequester(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		if !requester.IsStaff() {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithRequester кладёт пользователя в контекст
func WithRequester(ctx context.Context, requester domain.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, requester)
}

// GetRequester возвращает пользователя из контекста
func GetRequester(ctx context.Context) (domain.Requester, bool) {
	requester, ok := ctx.Value(requesterKey).(domain.Requester)
	return requester, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	requester, ok := GetRequester(ctx)
	if !ok {
		return 0, false
	}
	return requester.UserID, true
}
