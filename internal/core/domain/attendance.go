package domain

import "time"

// MembershipStatus is the advisory verdict shown at check-in. It never blocks
// entry; the front desk uses it to chase unpaid cuotas.
type MembershipStatus string

const (
	// StatusActive: a subscription covers today, or we are inside the
	// month-start payment window.
	StatusActive MembershipStatus = "ACTIVA"
	// StatusWarning: no covering subscription and the soft-reminder window
	// (day 11 to 15) applies.
	StatusWarning MembershipStatus = "PERSUADIDO"
	// StatusExpired: no covering subscription, past the 15th.
	StatusExpired MembershipStatus = "VENCIDA"
)

// AttendanceRecord is one check-in event, owned by the attendance
// collaborator. The gate only decides its content and triggers the append.
type AttendanceRecord struct {
	AttendanceID string    `json:"attendanceID"`
	MemberID     string    `json:"memberID"`
	CheckedInAt  time.Time `json:"checkedInAt"`
}

// CheckInResult is what the kiosk shows after a check-in.
type CheckInResult struct {
	MemberName string           `json:"memberName"`
	Phone      string           `json:"phone,omitempty"`
	Status     MembershipStatus `json:"status"`
	// DaysRemaining is set only when an actual subscription covers now.
	DaysRemaining int  `json:"daysRemaining,omitempty"`
	HasCoverage   bool `json:"hasCoverage"`
}
