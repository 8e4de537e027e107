package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields builds audit fields for a freshly created entity.
func NewAuditFields(actorUserID string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorUserID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorUserID,
	}
}

// Touch updates the last-updated audit fields in place.
func (a *AuditFields) Touch(actorUserID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorUserID
}
