package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

const createEmergencyContactsTable = `
CREATE TABLE IF NOT EXISTS emergency_contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city_id INTEGER REFERENCES cities(id),
	name TEXT NOT NULL,
	number TEXT NOT NULL,
	service_type TEXT NOT NULL,
	is_national INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_emergency_contacts_city ON emergency_contacts(city_id);
`

type EmergencyContactRepository struct {
	db *sql.DB
}

func NewEmergencyContactRepository(db *sql.DB) repository.EmergencyContactRepository {
	return &EmergencyContactRepository{db: db}
}

func (r *EmergencyContactRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEmergencyContactsTable); err != nil {
		return fmt.Errorf("create emergency contacts table: %w", err)
	}
	return nil
}

func (r *EmergencyContactRepository) Create(ctx context.Context, contact *domain.EmergencyContact) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO emergency_contacts (city_id, name, number, service_type, is_national)
VALUES (?, ?, ?, ?, ?)`,
		contact.CityID,
		contact.Name,
		contact.Number,
		contact.ServiceType,
		contact.IsNational,
	)
	if err != nil {
		return 0, fmt.Errorf("insert emergency contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("emergency contact last insert id: %w", err)
	}
	contact.ID = id
	return id, nil
}

func (r *EmergencyContactRepository) List(ctx context.Context, cityID *int64) ([]domain.EmergencyContact, error) {
	query := `
SELECT id, city_id, name, number, service_type, is_national
FROM emergency_contacts
WHERE is_national = 1`
	args := []any{}
	if cityID != nil {
		query += ` OR city_id = ?`
		args = append(args, *cityID)
	}
	query += ` ORDER BY is_national DESC, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.EmergencyContact
	for rows.Next() {
		var (
			contact domain.EmergencyContact
			city    sql.NullInt64
		)
		if err := rows.Scan(&contact.ID, &city, &contact.Name, &contact.Number, &contact.ServiceType, &contact.IsNational); err != nil {
			return nil, fmt.Errorf("scan emergency contact: %w", err)
		}
		if city.Valid {
			contact.CityID = &city.Int64
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emergency contacts: %w", err)
	}
	return contacts, nil
}

func (r *EmergencyContactRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM emergency_contacts WHERE number = ?`, number).Scan(&count); err != nil {
		return false, fmt.Errorf("check contact number: %w", err)
	}
	return count > 0, nil
}
