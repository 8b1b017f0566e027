package models

import "time"

// Attendance is the db row for one check-in event.
type Attendance struct {
	AttendanceID string    `db:"attendance_id"`
	MemberID     string    `db:"member_id"`
	CheckedInAt  time.Time `db:"checked_in_at"`
}
