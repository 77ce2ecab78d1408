package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		want       domain.Requester
	}{
		{name: "student by default", userID: "42", wantStatus: http.StatusOK, want: domain.Requester{UserID: 42, Role: domain.RoleStudent}},
		{name: "staff", userID: "7", role: "staff", wantStatus: http.StatusOK, want: domain.Requester{UserID: 7, Role: domain.RoleStaff}},
		{name: "admin", userID: "1", role: "ADMIN", wantStatus: http.StatusOK, want: domain.Requester{UserID: 1, Role: domain.RoleAdmin}},
		{name: "missing user", wantStatus: http.StatusUnauthorized},
		{name: "not a number", userID: "abc", wantStatus: http.StatusUnauthorized},
		{name: "negative", userID: "-5", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Requester
			handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var ok bool
				got, ok = GetRequester(r.Context())
				require.True(t, ok)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	handler := Auth(RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	for role, want := range map[string]int{
		"student": http.StatusForbidden,
		"staff":   http.StatusOK,
		"admin":   http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "10")
		req.Header.Set(HeaderUserRole, role)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}
}
