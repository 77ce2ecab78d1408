package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMachine_DefaultAllowsEverything(t *testing.T) {
	m := NewStatusMachine(nil)

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.True(t, m.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStatusMachine_Validate(t *testing.T) {
	m := NewStatusMachine(DefaultTransitionTable())

	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		remark  string
		wantErr error
	}{
		{name: "on-hold needs remark", from: StatusPendingApproval, to: StatusOnHold, remark: "", wantErr: ErrRemarkRequired},
		{name: "whitespace is not a remark", from: StatusPendingApproval, to: StatusDeclined, remark: "   \t", wantErr: ErrRemarkRequired},
		{name: "for-printing needs remark", from: StatusOnHold, to: StatusForPrinting, remark: "", wantErr: ErrRemarkRequired},
		{name: "for-printing with remark", from: StatusOnHold, to: StatusForPrinting, remark: "photo ok"},
		{name: "to-claim without remark", from: StatusForPrinting, to: StatusToClaim},
		{name: "confirmed without remark", from: StatusToClaim, to: StatusConfirmed},
		{name: "backwards correction", from: StatusToClaim, to: StatusOnHold, remark: "wrong photo"},
		{name: "same status resubmission", from: StatusDeclined, to: StatusDeclined, remark: "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Validate(tt.from, tt.to, tt.remark)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStatusMachine_StrictTable(t *testing.T) {
	table, err := ParseTransitionTable(map[string][]string{
		"pending-approval": {"on-hold", "declined"},
		"declined":         {},
	})
	require.NoError(t, err)

	m := NewStatusMachine(table)

	assert.NoError(t, m.Validate(StatusPendingApproval, StatusOnHold, "missing document"))
	assert.ErrorIs(t, m.Validate(StatusPendingApproval, StatusConfirmed, ""), ErrInvalidStatusTransition)
	assert.ErrorIs(t, m.Validate(StatusDeclined, StatusOnHold, "reopen"), ErrInvalidStatusTransition)
	assert.NoError(t, m.Validate(StatusDeclined, StatusDeclined, "again"))
}

func TestParseTransitionTable_UnknownStatus(t *testing.T) {
	_, err := ParseTransitionTable(map[string][]string{"pending-approval": {"shipped"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusMachine_CapacityEffect(t *testing.T) {
	m := NewStatusMachine(nil)

	assert.Equal(t, CapacityRelease, m.CapacityEffect(StatusPendingApproval, StatusDeclined))
	assert.Equal(t, CapacityRelease, m.CapacityEffect(StatusOnHold, StatusDeclined))
	assert.Equal(t, CapacityKeep, m.CapacityEffect(StatusDeclined, StatusDeclined))
	assert.Equal(t, CapacityKeep, m.CapacityEffect(StatusPendingApproval, StatusOnHold))
	assert.Equal(t, CapacityReacquire, m.CapacityEffect(StatusDeclined, StatusOnHold))
}
