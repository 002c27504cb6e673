package storage

import (
	"context"
	"errors"

	"foodgateway/pkg/models"
)

var (
	ErrNoAvailableDriver = errors.New("no available drivers found")
	ErrDriverNotFound    = errors.New("driver not found")
)

// LedgerUpdate receives the current balance of an account and returns the
// new balance and whether it should be written.
type LedgerUpdate func(balance float64) (next float64, commit bool)

type ILedgerStorage interface {
	// Update runs fn atomically for one account. Unknown accounts start at 0.
	// The returned balance is the one in effect after the call.
	Update(ctx context.Context, accountID string, fn LedgerUpdate) (float64, error)
	Balance(ctx context.Context, accountID string) (float64, error)
	Set(ctx context.Context, accountID string, balance float64) error
}

type IDriverStorage interface {
	// ClaimNearest marks the available driver closest to loc as busy and returns it.
	ClaimNearest(ctx context.Context, loc models.Location) (*models.Driver, error)
	Get(ctx context.Context, driverID string) (*models.Driver, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)
}

// SeedBalances are the accounts every fresh ledger starts with.
var SeedBalances = map[string]float64{
	"customer-123":  1000.0,
	"customer-456":  500.0,
	"customer-789":  2000.0,
	"customer-poor": 50.0,
}

// SeedDrivers is the initial driver pool.
func SeedDrivers() []*models.Driver {
	return []*models.Driver{
		{ID: "driver-001", Name: "John Silva", Vehicle: "Toyota Prius", LicensePlate: "ABC-1234", Latitude: -23.5505, Longitude: -46.6333, Available: true},
		{ID: "driver-002", Name: "Maria Santos", Vehicle: "Honda Civic", LicensePlate: "XYZ-5678", Latitude: -23.5515, Longitude: -46.6343, Available: true},
		{ID: "driver-003", Name: "Carlos Oliveira", Vehicle: "Nissan Versa", LicensePlate: "DEF-9012", Latitude: -23.5525, Longitude: -46.6353, Available: true},
		{ID: "driver-004", Name: "Ana Costa", Vehicle: "Hyundai HB20", LicensePlate: "GHI-3456", Latitude: -23.5535, Longitude: -46.6363, Available: false},
		{ID: "driver-005", Name: "Roberto Lima", Vehicle: "Chevrolet Onix", LicensePlate: "JKL-7890", Latitude: -23.5545, Longitude: -46.6373, Available: true},
	}
}
