package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/storage"
)

const driverColumns = `id, name, vehicle, license_plate, latitude, longitude, available`

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

// ClaimNearest locks every available row so two concurrent claims never pick
// the same driver.
func (r *driverRepo) ClaimNearest(ctx context.Context, loc models.Location) (*models.Driver, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT `+driverColumns+` FROM drivers WHERE available FOR UPDATE`)
	if err != nil {
		r.log.Error("failed to lock available drivers", logger.Error(err))
		return nil, fmt.Errorf("select drivers: %w", err)
	}
	drivers, err := scanDrivers(rows)
	if err != nil {
		return nil, err
	}

	nearest := storage.NearestAvailable(drivers, loc)
	if nearest == nil {
		return nil, storage.ErrNoAvailableDriver
	}

	if _, err := tx.Exec(ctx, `UPDATE drivers SET available = FALSE, updated_at = NOW() WHERE id = $1`, nearest.ID); err != nil {
		r.log.Error("failed to claim driver", logger.String("driver_id", nearest.ID), logger.Error(err))
		return nil, fmt.Errorf("claim driver: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	nearest.Available = false
	return nearest, nil
}

func (r *driverRepo) Get(ctx context.Context, driverID string) (*models.Driver, error) {
	var d models.Driver
	err := r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, driverID).Scan(
		&d.ID, &d.Name, &d.Vehicle, &d.LicensePlate, &d.Latitude, &d.Longitude, &d.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrDriverNotFound
		}
		r.log.Error("failed to get driver", logger.String("driver_id", driverID), logger.Error(err))
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	return scanDrivers(rows)
}

func scanDrivers(rows pgx.Rows) ([]*models.Driver, error) {
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Vehicle, &d.LicensePlate, &d.Latitude, &d.Longitude, &d.Available); err != nil {
			return nil, err
		}
		drivers = append(drivers, &d)
	}
	return drivers, rows.Err()
}
