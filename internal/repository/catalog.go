package repository

import (
	"context"

	"citysafe/internal/domain"
)

// CityRepository defines persistence operations for the city catalog.
type CityRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, city *domain.City) (int64, error)
	List(ctx context.Context) ([]domain.City, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	GetByName(ctx context.Context, name string) (*domain.City, error)
}

// CrimeStatisticRepository stores per-year crime rates for cities.
type CrimeStatisticRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, stat *domain.CrimeStatistic) (int64, error)
	ListByCity(ctx context.Context, cityID int64) ([]domain.CrimeStatistic, error)
}

// AttractionRepository stores tourist attractions for cities.
type AttractionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, attraction *domain.Attraction) (int64, error)
	ListByCity(ctx context.Context, cityID int64) ([]domain.Attraction, error)
}

// EmergencyContactRepository stores national and city helpline numbers.
type EmergencyContactRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, contact *domain.EmergencyContact) (int64, error)
	// List returns national contacts plus, when cityID is non-nil, the
	// contacts scoped to that city.
	List(ctx context.Context, cityID *int64) ([]domain.EmergencyContact, error)
	NumberExists(ctx context.Context, number string) (bool, error)
}
