package models

import "time"

// Provider is the profile document that owns a provider's schedule configuration.
type Provider struct {
	ID                 ProviderID                `bson:"_id" json:"id"`
	Name               string                    `bson:"name" json:"name"`
	Email              string                    `bson:"email" json:"email"`
	WeeklyAvailability []WeeklyAvailabilityEntry `bson:"weeklyAvailability" json:"weeklyAvailability"`
	BlockedRanges      []BlockedRange            `bson:"blockedRanges" json:"blockedRanges"`
	Offerings          []Offering                `bson:"offerings" json:"offerings"`
	CreatedAt          time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                 `bson:"updatedAt" json:"updatedAt"`
}

// Offering looks up an offering by id.
func (p Provider) Offering(id string) (Offering, bool) {
	for _, o := range p.Offerings {
		if o.ID == id {
			return o, true
		}
	}
	return Offering{}, false
}

// ProviderAuthResponse is returned on registration with the bearer token for the new profile.
type ProviderAuthResponse struct {
	Provider Provider `json:"provider"`
	Token    string   `json:"token"`
}
