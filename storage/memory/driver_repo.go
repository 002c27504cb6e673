package memory

import (
	"context"
	"sort"
	"sync"

	"foodgateway/pkg/models"
	"foodgateway/storage"
)

type driverRepo struct {
	mu      sync.RWMutex
	drivers map[string]*models.Driver
}

func NewDriverRepo(drivers []*models.Driver) storage.IDriverStorage {
	r := &driverRepo{drivers: make(map[string]*models.Driver, len(drivers))}
	for _, d := range drivers {
		cp := *d
		r.drivers[d.ID] = &cp
	}
	return r
}

func (r *driverRepo) ClaimNearest(ctx context.Context, loc models.Location) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drivers := make([]*models.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		drivers = append(drivers, d)
	}
	nearest := storage.NearestAvailable(drivers, loc)
	if nearest == nil {
		return nil, storage.ErrNoAvailableDriver
	}

	nearest.Available = false
	cp := *nearest
	return &cp, nil
}

func (r *driverRepo) Get(ctx context.Context, driverID string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return nil, storage.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*models.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		cp := *d
		drivers = append(drivers, &cp)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	return drivers, nil
}
