package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

const createCrimeStatisticsTable = `
CREATE TABLE IF NOT EXISTS crime_statistics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city_id INTEGER NOT NULL REFERENCES cities(id),
	year INTEGER NOT NULL,
	crime_rate REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_crime_statistics_city ON crime_statistics(city_id);
`

type CrimeStatisticRepository struct {
	db *sql.DB
}

func NewCrimeStatisticRepository(db *sql.DB) repository.CrimeStatisticRepository {
	return &CrimeStatisticRepository{db: db}
}

func (r *CrimeStatisticRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCrimeStatisticsTable); err != nil {
		return fmt.Errorf("create crime statistics table: %w", err)
	}
	return nil
}

func (r *CrimeStatisticRepository) Create(ctx context.Context, stat *domain.CrimeStatistic) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO crime_statistics (city_id, year, crime_rate)
VALUES (?, ?, ?)`,
		stat.CityID,
		stat.Year,
		stat.CrimeRate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert crime statistic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("crime statistic last insert id: %w", err)
	}
	stat.ID = id
	return id, nil
}

func (r *CrimeStatisticRepository) ListByCity(ctx context.Context, cityID int64) ([]domain.CrimeStatistic, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, city_id, year, crime_rate
FROM crime_statistics
WHERE city_id = ?
ORDER BY year`,
		cityID,
	)
	if err != nil {
		return nil, fmt.Errorf("list crime statistics: %w", err)
	}
	defer rows.Close()

	var stats []domain.CrimeStatistic
	for rows.Next() {
		var stat domain.CrimeStatistic
		if err := rows.Scan(&stat.ID, &stat.CityID, &stat.Year, &stat.CrimeRate); err != nil {
			return nil, fmt.Errorf("scan crime statistic: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crime statistics: %w", err)
	}
	return stats, nil
}
