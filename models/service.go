package models

// Service is a bookable service offered by the tenant. Read-only reference data.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Description     string  `bson:"description" json:"description"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Category        string  `bson:"category,omitempty" json:"category,omitempty"`
	Price           float64 `bson:"price,omitempty" json:"price,omitempty"`
	Active          bool    `bson:"active" json:"active"`
}

// Provider is a professional who performs one or more services.
type Provider struct {
	ID         string   `bson:"id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Bio        string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Timezone   string   `bson:"timezone" json:"timezone"`
	Active     bool     `bson:"active" json:"active"`
	ServiceIDs []string `bson:"serviceIds" json:"serviceIds"`
}

// Performs reports whether the provider offers the given service.
func (p Provider) Performs(serviceID string) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
