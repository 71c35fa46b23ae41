package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

const createAttractionsTable = `
CREATE TABLE IF NOT EXISTS attractions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city_id INTEGER NOT NULL REFERENCES cities(id),
	name TEXT NOT NULL,
	category TEXT,
	rating REAL
);
CREATE INDEX IF NOT EXISTS idx_attractions_city ON attractions(city_id);
`

type AttractionRepository struct {
	db *sql.DB
}

func NewAttractionRepository(db *sql.DB) repository.AttractionRepository {
	return &AttractionRepository{db: db}
}

func (r *AttractionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAttractionsTable); err != nil {
		return fmt.Errorf("create attractions table: %w", err)
	}
	return nil
}

func (r *AttractionRepository) Create(ctx context.Context, attraction *domain.Attraction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO attractions (city_id, name, category, rating)
VALUES (?, ?, ?, ?)`,
		attraction.CityID,
		attraction.Name,
		nullIfEmpty(attraction.Category),
		attraction.Rating,
	)
	if err != nil {
		return 0, fmt.Errorf("insert attraction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attraction last insert id: %w", err)
	}
	attraction.ID = id
	return id, nil
}

func (r *AttractionRepository) ListByCity(ctx context.Context, cityID int64) ([]domain.Attraction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, city_id, name, category, rating
FROM attractions
WHERE city_id = ?
ORDER BY name`,
		cityID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attractions: %w", err)
	}
	defer rows.Close()

	var attractions []domain.Attraction
	for rows.Next() {
		var (
			attraction domain.Attraction
			category   sql.NullString
			rating     sql.NullFloat64
		)
		if err := rows.Scan(&attraction.ID, &attraction.CityID, &attraction.Name, &category, &rating); err != nil {
			return nil, fmt.Errorf("scan attraction: %w", err)
		}
		attraction.Category = category.String
		if rating.Valid {
			attraction.Rating = &rating.Float64
		}
		attractions = append(attractions, attraction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attractions: %w", err)
	}
	return attractions, nil
}
