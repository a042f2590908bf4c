package domain

import "time"

// AuditFields holds standard audit information for domain entities. The
// operator IDs come from the already-authenticated caller identity.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Operator ID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Operator ID
}
