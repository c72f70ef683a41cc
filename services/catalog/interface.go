package catalog

import "reservo/models"

// Repository exposes the tenant's read-only reference data: the services on
// offer and the providers who perform them.
type Repository interface {
	ListServices() []models.Service
	ListProviders() []models.Provider
	GetService(id string) (*models.Service, bool)
	GetProvider(id string) (*models.Provider, bool)
	ServicesForProvider(providerID string) []models.Service
	ProvidersForService(serviceID string) []models.Provider
}
