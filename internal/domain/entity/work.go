package entity

import "time"

// WorkStatus is the lifecycle state of a catering job.
type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "pending"
	WorkStatusInProgress WorkStatus = "in-progress"
	WorkStatusCompleted  WorkStatus = "completed"
	WorkStatusDue        WorkStatus = "due"
)

// IsValid checks if the WorkStatus is a valid value.
func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusPending, WorkStatusInProgress, WorkStatusCompleted, WorkStatusDue:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks whether a payment has been settled.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Violation records a penalty charged against a staff assignment.
type Violation struct {
	Reason  string  `json:"reason"`
	Penalty float64 `json:"penalty"`
}

// StaffAssignment is a staff member's participation record within a work,
// including payment and violation data. UserID references a User by
// identifier only.
type StaffAssignment struct {
	UserID        string        `json:"user"`
	AmountPaid    float64       `json:"amountPaid"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Violations    []Violation   `json:"violations"`
}

// TotalPenalty sums the penalties recorded against the assignment.
func (a StaffAssignment) TotalPenalty() float64 {
	var total float64
	for _, v := range a.Violations {
		total += v.Penalty
	}

	return total
}

// Work is a catering job with its assigned staff and payment state.
type Work struct {
	ID                   string            `json:"_id"`
	Title                string            `json:"title"`
	Description          string            `json:"description,omitempty"`
	DueDate              time.Time         `json:"dueDate"`
	StartTime            string            `json:"startTime,omitempty"`
	EndTime              string            `json:"endTime,omitempty"`
	TotalMembers         int               `json:"totalMembers"`
	Budget               float64           `json:"budget"`
	Status               WorkStatus        `json:"status"`
	OverallPaymentStatus PaymentStatus     `json:"overallPaymentStatus"`
	AssignedTo           []StaffAssignment `json:"assignedTo"`
	CreatedAt            time.Time         `json:"createdAt,omitzero"`
	UpdatedAt            time.Time         `json:"updatedAt,omitzero"`
}

// OverallPayment derives the work-level payment status from its
// assignments: completed exactly when every assignment is completed.
// A work with no assignments is pending.
func (w Work) OverallPayment() PaymentStatus {
	if len(w.AssignedTo) == 0 {
		return PaymentPending
	}
	for _, a := range w.AssignedTo {
		if a.PaymentStatus != PaymentCompleted {
			return PaymentPending
		}
	}

	return PaymentCompleted
}
