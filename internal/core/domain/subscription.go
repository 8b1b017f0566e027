package domain

import "time"

// Subscription is a member's plan subscription, owned by the subscription
// collaborator. Read-only input to the attendance gate.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	MemberID       string    `json:"memberID"`
	PlanID         string    `json:"planID"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
}

// CoversEndOfDay reports whether the subscription's end date, extended to the
// end of its calendar day, is at or after the given instant.
func (s Subscription) CoversEndOfDay(now time.Time) bool {
	endOfDay := time.Date(s.EndDate.Year(), s.EndDate.Month(), s.EndDate.Day(),
		23, 59, 59, 999_999_999, s.EndDate.Location())
	return !endOfDay.Before(now)
}
