package models

import "time"

// TimeSlot is a candidate booking window for a service/provider pair.
// Slots are generated on demand and never persisted; (Start, ProviderID,
// ServiceID) identifies a slot for selection purposes.
type TimeSlot struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	ProviderID string    `json:"providerId"`
	ServiceID  string    `json:"serviceId"`
}
