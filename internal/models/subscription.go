package models

import "time"

// Subscription is the db row for a member's plan subscription. Read-only
// input to the attendance gate.
type Subscription struct {
	SubscriptionID string    `db:"subscription_id"`
	MemberID       string    `db:"member_id"`
	PlanID         string    `db:"plan_id"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	IsActive       bool      `db:"is_active"`
}
