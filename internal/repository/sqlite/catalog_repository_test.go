package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

type catalogRepos struct {
	cities      repository.CityRepository
	stats       repository.CrimeStatisticRepository
	attractions repository.AttractionRepository
	contacts    repository.EmergencyContactRepository
}

func newCatalogRepos(t *testing.T, db *sql.DB) catalogRepos {
	t.Helper()
	ctx := context.Background()
	repos := catalogRepos{
		cities:      NewCityRepository(db),
		stats:       NewCrimeStatisticRepository(db),
		attractions: NewAttractionRepository(db),
		contacts:    NewEmergencyContactRepository(db),
	}
	require.NoError(t, repos.cities.Init(ctx))
	require.NoError(t, repos.stats.Init(ctx))
	require.NoError(t, repos.attractions.Init(ctx))
	require.NoError(t, repos.contacts.Init(ctx))
	return repos
}

func TestCityRepository_CreateListGet(t *testing.T) {
	repos := newCatalogRepos(t, newTestDB(t))
	ctx := context.Background()

	population := int64(31_000_000)
	city := &domain.City{
		Name:       "Delhi",
		State:      "Delhi",
		Latitude:   28.6139,
		Longitude:  77.2090,
		Population: &population,
		CrimeIndex: 72.5,
		SafetyZone: domain.ZoneRed,
	}
	id, err := repos.cities.Create(ctx, city)
	require.NoError(t, err)

	got, err := repos.cities.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Delhi", got.Name)
	require.Equal(t, domain.ZoneRed, got.SafetyZone)
	require.NotNil(t, got.Population)
	require.Equal(t, population, *got.Population)

	byName, err := repos.cities.GetByName(ctx, "Delhi")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)

	_, err = repos.cities.Create(ctx, &domain.City{Name: "Agra", State: "Uttar Pradesh", Latitude: 27.17, Longitude: 78.0, CrimeIndex: 40, SafetyZone: domain.ZoneOrange})
	require.NoError(t, err)

	cities, err := repos.cities.List(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	require.Equal(t, "Agra", cities[0].Name) // ordered by name

	_, err = repos.cities.GetByID(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCrimeStatisticsAndAttractions(t *testing.T) {
	repos := newCatalogRepos(t, newTestDB(t))
	ctx := context.Background()

	cityID, err := repos.cities.Create(ctx, &domain.City{Name: "Jaipur", State: "Rajasthan", Latitude: 26.9, Longitude: 75.8, CrimeIndex: 45, SafetyZone: domain.ZoneOrange})
	require.NoError(t, err)

	_, err = repos.stats.Create(ctx, &domain.CrimeStatistic{CityID: cityID, Year: 2023, CrimeRate: 310.5})
	require.NoError(t, err)
	_, err = repos.stats.Create(ctx, &domain.CrimeStatistic{CityID: cityID, Year: 2022, CrimeRate: 295.1})
	require.NoError(t, err)

	stats, err := repos.stats.ListByCity(ctx, cityID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, 2022, stats[0].Year) // ordered by year

	rating := 4.7
	_, err = repos.attractions.Create(ctx, &domain.Attraction{CityID: cityID, Name: "Hawa Mahal", Category: "monument", Rating: &rating})
	require.NoError(t, err)
	_, err = repos.attractions.Create(ctx, &domain.Attraction{CityID: cityID, Name: "Amber Fort"})
	require.NoError(t, err)

	attractions, err := repos.attractions.ListByCity(ctx, cityID)
	require.NoError(t, err)
	require.Len(t, attractions, 2)
	require.Equal(t, "Amber Fort", attractions[0].Name)
	require.Nil(t, attractions[0].Rating)
	require.NotNil(t, attractions[1].Rating)
	require.Equal(t, 4.7, *attractions[1].Rating)
}

func TestEmergencyContactRepository_List(t *testing.T) {
	repos := newCatalogRepos(t, newTestDB(t))
	ctx := context.Background()

	cityID, err := repos.cities.Create(ctx, &domain.City{Name: "Mumbai", State: "Maharashtra", Latitude: 19.07, Longitude: 72.87, CrimeIndex: 50, SafetyZone: domain.ZoneOrange})
	require.NoError(t, err)
	otherID, err := repos.cities.Create(ctx, &domain.City{Name: "Pune", State: "Maharashtra", Latitude: 18.52, Longitude: 73.85, CrimeIndex: 40, SafetyZone: domain.ZoneOrange})
	require.NoError(t, err)

	_, err = repos.contacts.Create(ctx, &domain.EmergencyContact{Name: "Police", Number: "100", ServiceType: "police", IsNational: true})
	require.NoError(t, err)
	_, err = repos.contacts.Create(ctx, &domain.EmergencyContact{CityID: &cityID, Name: "Mumbai Police Control Room", Number: "022-22621855", ServiceType: "police"})
	require.NoError(t, err)
	_, err = repos.contacts.Create(ctx, &domain.EmergencyContact{CityID: &otherID, Name: "Pune Police Control Room", Number: "020-26122880", ServiceType: "police"})
	require.NoError(t, err)

	// no city filter: national only
	national, err := repos.contacts.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, national, 1)
	require.True(t, national[0].IsNational)

	// city filter: national plus that city's contacts
	forMumbai, err := repos.contacts.List(ctx, &cityID)
	require.NoError(t, err)
	require.Len(t, forMumbai, 2)

	exists, err := repos.contacts.NumberExists(ctx, "100")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = repos.contacts.NumberExists(ctx, "000")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSeedEmergencyContacts_Idempotent(t *testing.T) {
	repos := newCatalogRepos(t, newTestDB(t))
	ctx := context.Background()

	_, err := repos.cities.Create(ctx, &domain.City{Name: "Delhi", State: "Delhi", Latitude: 28.61, Longitude: 77.21, CrimeIndex: 50, SafetyZone: domain.ZoneOrange})
	require.NoError(t, err)

	require.NoError(t, SeedEmergencyContacts(ctx, repos.contacts, repos.cities))

	cityID := int64(1)
	first, err := repos.contacts.List(ctx, &cityID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// second run must not duplicate anything
	require.NoError(t, SeedEmergencyContacts(ctx, repos.contacts, repos.cities))
	second, err := repos.contacts.List(ctx, &cityID)
	require.NoError(t, err)
	require.Len(t, second, len(first))
}
