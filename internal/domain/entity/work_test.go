package entity

import "testing"

func TestWork_OverallPayment(t *testing.T) {
	tests := []struct {
		name        string
		assignments []StaffAssignment
		want        PaymentStatus
	}{
		{
			name:        "no assignments",
			assignments: nil,
			want:        PaymentPending,
		},
		{
			name: "all completed",
			assignments: []StaffAssignment{
				{UserID: "u1", PaymentStatus: PaymentCompleted},
				{UserID: "u2", PaymentStatus: PaymentCompleted},
			},
			want: PaymentCompleted,
		},
		{
			name: "one still pending",
			assignments: []StaffAssignment{
				{UserID: "u1", PaymentStatus: PaymentCompleted},
				{UserID: "u2", PaymentStatus: PaymentPending},
			},
			want: PaymentPending,
		},
		{
			name: "single pending",
			assignments: []StaffAssignment{
				{UserID: "u1", PaymentStatus: PaymentPending},
			},
			want: PaymentPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Work{AssignedTo: tt.assignments}
			if got := w.OverallPayment(); got != tt.want {
				t.Errorf("OverallPayment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStaffAssignment_TotalPenalty(t *testing.T) {
	a := StaffAssignment{
		Violations: []Violation{
			{Reason: "late arrival", Penalty: 50},
			{Reason: "missing uniform", Penalty: 25.5},
		},
	}
	if got := a.TotalPenalty(); got != 75.5 {
		t.Errorf("TotalPenalty() = %v, want 75.5", got)
	}

	if got := (StaffAssignment{}).TotalPenalty(); got != 0 {
		t.Errorf("TotalPenalty() on empty assignment = %v, want 0", got)
	}
}

func TestWorkStatus_IsValid(t *testing.T) {
	for _, s := range []WorkStatus{WorkStatusPending, WorkStatusInProgress, WorkStatusCompleted, WorkStatusDue} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if WorkStatus("archived").IsValid() {
		t.Error("unknown status should be invalid")
	}
}
