package backend

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
	"foodgateway/storage"
)

const estimatedPickupMinutes = 5

type DriverServer struct {
	repo storage.IDriverStorage
	log  logger.ILogger
}

func NewDriverServer(repo storage.IDriverStorage, log logger.ILogger) *DriverServer {
	return &DriverServer{repo: repo, log: log}
}

// LogPool lists the driver pool the server starts with.
func (s *DriverServer) LogPool(ctx context.Context) error {
	drivers, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}

	available := 0
	for _, d := range drivers {
		if d.Available {
			available++
		}
		s.log.Info("driver in pool",
			logger.String("driver_id", d.ID),
			logger.String("name", d.Name),
			logger.String("vehicle", d.Vehicle),
			logger.Bool("available", d.Available))
	}
	s.log.Info("driver pool loaded", logger.Int("drivers", len(drivers)), logger.Int("available", available))
	return nil
}

func (s *DriverServer) AssignDriver(ctx context.Context, in *rpc.AssignDriverRequest) (*rpc.AssignDriverResponse, error) {
	pickup := models.DefaultPickup
	if in.PickupLocation != nil {
		pickup = models.Location{Latitude: in.PickupLocation.Latitude, Longitude: in.PickupLocation.Longitude}
	}

	driver, err := s.repo.ClaimNearest(ctx, pickup)
	if err != nil {
		if errors.Is(err, storage.ErrNoAvailableDriver) {
			s.log.Info("no drivers available", logger.String("order_id", in.OrderID))
			return &rpc.AssignDriverResponse{Status: models.DriverNoDriversAvailable}, nil
		}
		s.log.Error("failed to claim driver", logger.String("order_id", in.OrderID), logger.Error(err))
		return nil, status.Errorf(codes.Internal, "claim driver: %v", err)
	}

	s.log.Info("driver assigned",
		logger.String("order_id", in.OrderID),
		logger.String("driver_id", driver.ID),
		logger.String("vehicle", driver.Vehicle))

	return &rpc.AssignDriverResponse{
		DriverID:             driver.ID,
		DriverName:           driver.Name,
		Vehicle:              fmt.Sprintf("%s - %s", driver.Vehicle, driver.LicensePlate),
		EstimatedTimeMinutes: estimatedPickupMinutes,
		Status:               models.DriverAssigned,
	}, nil
}

func (s *DriverServer) GetDriverStatus(ctx context.Context, in *rpc.DriverStatusRequest) (*rpc.DriverStatusResponse, error) {
	driver, err := s.repo.Get(ctx, in.DriverID)
	if err != nil {
		if errors.Is(err, storage.ErrDriverNotFound) {
			return nil, status.Errorf(codes.NotFound, "driver not found: %s", in.DriverID)
		}
		return nil, status.Errorf(codes.Internal, "get driver: %v", err)
	}

	return &rpc.DriverStatusResponse{
		Driver: &rpc.Driver{
			DriverID:        driver.ID,
			Name:            driver.Name,
			Vehicle:         driver.Vehicle,
			LicensePlate:    driver.LicensePlate,
			CurrentLocation: &rpc.Location{Latitude: driver.Latitude, Longitude: driver.Longitude},
			Available:       driver.Available,
		},
	}, nil
}
