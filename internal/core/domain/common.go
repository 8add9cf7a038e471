package domain

import "time"

// AuditFields holds standard row audit information for domain entities.
// CreatedBy/LastUpdatedBy carry the acting admin subject, or a job label
// (e.g. "fx-refresh") for automated writes.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
