package service

import (
	"context"
	"errors"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

// DefaultCrimeIndex is assumed for cities created without crime data.
const DefaultCrimeIndex = 50.0

// CatalogService exposes the city catalog: cities with derived safety zones,
// their crime statistics and attractions, and emergency contacts.
type CatalogService interface {
	CreateCity(ctx context.Context, city *domain.City) (*domain.City, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	// GetCity returns the city with attractions and crime statistics attached.
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	AddCrimeStatistic(ctx context.Context, stat *domain.CrimeStatistic) (*domain.CrimeStatistic, error)
	ListCrimeStatistics(ctx context.Context, cityID int64) ([]domain.CrimeStatistic, error)
	AddAttraction(ctx context.Context, attraction *domain.Attraction) (*domain.Attraction, error)
	ListAttractions(ctx context.Context, cityID int64) ([]domain.Attraction, error)
	ListEmergencyContacts(ctx context.Context, cityID *int64) ([]domain.EmergencyContact, error)
}

type catalogService struct {
	cities      repository.CityRepository
	stats       repository.CrimeStatisticRepository
	attractions repository.AttractionRepository
	contacts    repository.EmergencyContactRepository
}

func NewCatalogService(
	cities repository.CityRepository,
	stats repository.CrimeStatisticRepository,
	attractions repository.AttractionRepository,
	contacts repository.EmergencyContactRepository,
) CatalogService {
	return &catalogService{
		cities:      cities,
		stats:       stats,
		attractions: attractions,
		contacts:    contacts,
	}
}

func (s *catalogService) CreateCity(ctx context.Context, city *domain.City) (*domain.City, error) {
	if city.Name == "" {
		return nil, errors.New("city name is required")
	}
	if city.State == "" {
		return nil, errors.New("city state is required")
	}
	if city.Latitude < -90 || city.Latitude > 90 {
		return nil, errors.New("latitude out of range")
	}
	if city.Longitude < -180 || city.Longitude > 180 {
		return nil, errors.New("longitude out of range")
	}

	if city.CrimeIndex == 0 {
		city.CrimeIndex = DefaultCrimeIndex
	}
	// the stored zone always agrees with the stored index
	city.SafetyZone = domain.ZoneForCrimeIndex(city.CrimeIndex)

	if _, err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *catalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

func (s *catalogService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	city, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attractions, err := s.attractions.ListByCity(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.ListByCity(ctx, id)
	if err != nil {
		return nil, err
	}

	city.Attractions = attractions
	city.CrimeStats = stats
	return city, nil
}

func (s *catalogService) AddCrimeStatistic(ctx context.Context, stat *domain.CrimeStatistic) (*domain.CrimeStatistic, error) {
	if _, err := s.cities.GetByID(ctx, stat.CityID); err != nil {
		return nil, err
	}
	if stat.Year <= 0 {
		return nil, errors.New("year is required")
	}
	if stat.CrimeRate < 0 {
		return nil, errors.New("crime rate must not be negative")
	}
	if _, err := s.stats.Create(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *catalogService) ListCrimeStatistics(ctx context.Context, cityID int64) ([]domain.CrimeStatistic, error) {
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return nil, err
	}
	return s.stats.ListByCity(ctx, cityID)
}

func (s *catalogService) AddAttraction(ctx context.Context, attraction *domain.Attraction) (*domain.Attraction, error) {
	if _, err := s.cities.GetByID(ctx, attraction.CityID); err != nil {
		return nil, err
	}
	if attraction.Name == "" {
		return nil, errors.New("attraction name is required")
	}
	if attraction.Rating != nil && (*attraction.Rating < 0 || *attraction.Rating > 5) {
		return nil, errors.New("rating must be between 0 and 5")
	}
	if _, err := s.attractions.Create(ctx, attraction); err != nil {
		return nil, err
	}
	return attraction, nil
}

func (s *catalogService) ListAttractions(ctx context.Context, cityID int64) ([]domain.Attraction, error) {
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return nil, err
	}
	return s.attractions.ListByCity(ctx, cityID)
}

func (s *catalogService) ListEmergencyContacts(ctx context.Context, cityID *int64) ([]domain.EmergencyContact, error) {
	return s.contacts.List(ctx, cityID)
}
