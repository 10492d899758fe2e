package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository defines the interface for reading devices from the registry.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// ListByType retrieves all devices of the given device type, joined
	// with their room names, in stable registry order.
	ListByType(ctx context.Context, deviceType string) ([]Device, error)
}

// SQLiteRepository implements Repository using the platform's SQLite
// registry database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open connection to the registry database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ListByType retrieves all devices of the given device type.
// Rows are ordered by id so the snapshot preserves registry insertion order.
func (r *SQLiteRepository) ListByType(ctx context.Context, deviceType string) ([]Device, error) {
	query := `
		SELECT d.id, d.name, r.name, dt.name, d.pattern, d.device_attributes
		FROM devices d
		JOIN device_types dt ON dt.id = d.device_type_id
		LEFT JOIN rooms r ON r.id = d.room_id
		WHERE dt.name = ?
		ORDER BY d.id`

	rows, err := r.db.QueryContext(ctx, query, deviceType)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		device, err := scanDeviceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, *device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// rowScanner is an interface that sql.Row and sql.Rows both implement.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDeviceRow scans a row or rows result into a Device.
func scanDeviceRow(scanner rowScanner) (*Device, error) {
	var d Device
	var room sql.NullString
	var patternJSON string
	var attrsJSON sql.NullString

	err := scanner.Scan(
		&d.ID,
		&d.Name,
		&room,
		&d.DeviceType,
		&patternJSON,
		&attrsJSON,
	)
	if err != nil {
		return nil, err
	}

	if room.Valid {
		d.Room = &room.String
	}

	// Unmarshal JSON fields
	if err := json.Unmarshal([]byte(patternJSON), &d.Patterns); err != nil {
		return nil, fmt.Errorf("unmarshalling pattern: %w", err)
	}

	if attrsJSON.Valid && attrsJSON.String != "" {
		if err := json.Unmarshal([]byte(attrsJSON.String), &d.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshalling device_attributes: %w", err)
		}
	}

	return &d, nil
}
