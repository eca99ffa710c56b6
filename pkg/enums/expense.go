package enums

import "fmt"

// ExpenseStatus tracks an expense through the approval flow.
type ExpenseStatus string

const (
	ExpenseStatusPending    ExpenseStatus = "pending"
	ExpenseStatusApproved   ExpenseStatus = "approved"
	ExpenseStatusReimbursed ExpenseStatus = "reimbursed"
	ExpenseStatusRejected   ExpenseStatus = "rejected"
)

var validExpenseStatuses = []ExpenseStatus{
	ExpenseStatusPending,
	ExpenseStatusApproved,
	ExpenseStatusReimbursed,
	ExpenseStatusRejected,
}

// String implements fmt.Stringer.
func (s ExpenseStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ExpenseStatus.
func (s ExpenseStatus) IsValid() bool {
	for _, candidate := range validExpenseStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseExpenseStatus converts raw input into an ExpenseStatus.
func ParseExpenseStatus(value string) (ExpenseStatus, error) {
	for _, candidate := range validExpenseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense status %q", value)
}
