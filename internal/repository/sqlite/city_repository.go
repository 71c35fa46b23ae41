package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

const createCitiesTable = `
CREATE TABLE IF NOT EXISTS cities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	state TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	population INTEGER,
	crime_index REAL NOT NULL DEFAULT 50.0,
	safety_zone TEXT NOT NULL DEFAULT 'orange'
);
CREATE INDEX IF NOT EXISTS idx_cities_name ON cities(name);
CREATE INDEX IF NOT EXISTS idx_cities_state ON cities(state);
`

type CityRepository struct {
	db *sql.DB
}

func NewCityRepository(db *sql.DB) repository.CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCitiesTable); err != nil {
		return fmt.Errorf("create cities table: %w", err)
	}
	return nil
}

func (r *CityRepository) Create(ctx context.Context, city *domain.City) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO cities (name, state, latitude, longitude, population, crime_index, safety_zone)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		city.Name,
		city.State,
		city.Latitude,
		city.Longitude,
		city.Population,
		city.CrimeIndex,
		string(city.SafetyZone),
	)
	if err != nil {
		return 0, fmt.Errorf("insert city: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("city last insert id: %w", err)
	}
	city.ID = id
	return id, nil
}

func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, state, latitude, longitude, population, crime_index, safety_zone
FROM cities
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return cities, nil
}

func (r *CityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, state, latitude, longitude, population, crime_index, safety_zone
FROM cities
WHERE id = ?`,
		id,
	)
	return scanCity(row)
}

func (r *CityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, state, latitude, longitude, population, crime_index, safety_zone
FROM cities
WHERE name = ?`,
		name,
	)
	return scanCity(row)
}

func scanCity(row interface {
	Scan(dest ...any) error
}) (*domain.City, error) {
	var (
		city       domain.City
		population sql.NullInt64
		zone       string
	)
	if err := row.Scan(
		&city.ID,
		&city.Name,
		&city.State,
		&city.Latitude,
		&city.Longitude,
		&population,
		&city.CrimeIndex,
		&zone,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("city: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan city: %w", err)
	}
	if population.Valid {
		city.Population = &population.Int64
	}
	city.SafetyZone = domain.SafetyZone(zone)
	return &city, nil
}
