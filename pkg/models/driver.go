package models

const (
	DriverAssigned           = "ASSIGNED"
	DriverNoDriversAvailable = "NO_DRIVERS_AVAILABLE"
)

// Driver is a member of the driver-service pool.
type Driver struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Vehicle      string  `json:"vehicle"`
	LicensePlate string  `json:"license_plate"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Available    bool    `json:"available"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultPickup is used when the delivery address carries no coordinates.
var DefaultPickup = Location{Latitude: -23.5505, Longitude: -46.6333}
