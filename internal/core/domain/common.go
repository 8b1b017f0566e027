package domain

import "time"

// AuditFields holds standard audit timestamps for mutable entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
