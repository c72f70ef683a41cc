package catalog

import "reservo/models"

// MemoryRepository serves catalog data from a fixed in-memory set. Reference
// data is small and read-only, so no external store is involved.
type MemoryRepository struct {
	services  []models.Service
	providers []models.Provider
}

// NewMemoryRepository builds a repository over the given data. Inactive
// entries are filtered out up front.
func NewMemoryRepository(services []models.Service, providers []models.Provider) *MemoryRepository {
	repo := &MemoryRepository{}
	for _, s := range services {
		if s.Active {
			repo.services = append(repo.services, s)
		}
	}
	for _, p := range providers {
		if p.Active {
			repo.providers = append(repo.providers, p)
		}
	}
	return repo
}

// NewDefaultRepository returns a repository seeded with the demo catalog.
func NewDefaultRepository() *MemoryRepository {
	return NewMemoryRepository(defaultServices, defaultProviders)
}

func (r *MemoryRepository) ListServices() []models.Service {
	out := make([]models.Service, len(r.services))
	copy(out, r.services)
	return out
}

func (r *MemoryRepository) ListProviders() []models.Provider {
	out := make([]models.Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

func (r *MemoryRepository) GetService(id string) (*models.Service, bool) {
	for i := range r.services {
		if r.services[i].ID == id {
			s := r.services[i]
			return &s, true
		}
	}
	return nil, false
}

func (r *MemoryRepository) GetProvider(id string) (*models.Provider, bool) {
	for i := range r.providers {
		if r.providers[i].ID == id {
			p := r.providers[i]
			return &p, true
		}
	}
	return nil, false
}

// ServicesForProvider returns the services the given provider performs.
func (r *MemoryRepository) ServicesForProvider(providerID string) []models.Service {
	prov, ok := r.GetProvider(providerID)
	if !ok {
		return nil
	}
	var out []models.Service
	for _, s := range r.services {
		if prov.Performs(s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// ProvidersForService returns the providers able to perform the given service.
func (r *MemoryRepository) ProvidersForService(serviceID string) []models.Provider {
	var out []models.Provider
	for _, p := range r.providers {
		if p.Performs(serviceID) {
			out = append(out, p)
		}
	}
	return out
}
