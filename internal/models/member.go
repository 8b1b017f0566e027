package models

// Member is the db row for a gym member. The member module owns writes; this
// core only reads the columns needed for ledger and check-in flows.
type Member struct {
	MemberID   string `db:"member_id"`
	NationalID string `db:"national_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Phone      string `db:"phone"` // nullable
	IsActive   bool   `db:"is_active"`
}
