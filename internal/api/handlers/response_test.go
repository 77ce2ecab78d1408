package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   domain.ErrorKind
		wantMsg    string
	}{
		{domain.ErrSlotNotFound, http.StatusNotFound, domain.KindSlotNotFound, "msg"},
		{domain.ErrSlotFull, http.StatusConflict, domain.KindSlotFull, "msg"},
		{domain.ErrClosedDate, http.StatusUnprocessableEntity, domain.KindClosedDate, "msg"},
		{domain.ErrOutsideSchedulingWindow, http.StatusUnprocessableEntity, domain.KindOutsideSchedulingWindow, "msg"},
		{domain.ErrRemarkRequired, http.StatusBadRequest, domain.KindRemarkRequired, "msg"},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidStatusTransition), http.StatusBadRequest, domain.KindInvalidStatusTransition, "msg"},
		{domain.ErrAccessDenied, http.StatusForbidden, domain.KindAccessDenied, "msg"},
		{fmt.Errorf("%w: db is down", domain.ErrInternal), http.StatusInternalServerError, domain.KindInternal, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(string(tt.wantKind), func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err, "msg")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, string(tt.wantKind), body.Kind)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

type sampleRequest struct {
	SlotID  int64   `json:"slotId" validate:"required,gt=0"`
	Purpose string  `json:"purpose" validate:"required"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=5"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"slotId": 1, "purpose": "NEW_ID"}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"slotId": `, wantErr: true},
		{name: "unknown field", body: `{"slotId": 1, "purpose": "NEW_ID", "userId": 5}`, wantErr: true},
		{name: "missing required", body: `{"slotId": 1}`, wantErr: true},
		{name: "too long notes", body: `{"slotId": 1, "purpose": "NEW_ID", "notes": "123456"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var v sampleRequest
			err := DecodeJSON(req, &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), v.SlotID)
		})
	}
}
