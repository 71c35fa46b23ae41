package sqlite

import (
	"context"
	"errors"
	"fmt"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

type seedContact struct {
	city        string
	name        string
	number      string
	serviceType string
}

// Official Indian government helplines.
var nationalHelplines = []seedContact{
	{name: "Emergency (All Services)", number: "112", serviceType: "emergency"},
	{name: "Police", number: "100", serviceType: "police"},
	{name: "Fire", number: "101", serviceType: "fire"},
	{name: "Ambulance", number: "102", serviceType: "ambulance"},
	{name: "Ambulance (EMRI)", number: "108", serviceType: "ambulance"},
	{name: "Women Helpline", number: "181", serviceType: "women"},
	{name: "Women Helpline (NCW)", number: "1091", serviceType: "women"},
	{name: "Child Helpline", number: "1098", serviceType: "child"},
	{name: "Tourist Helpline", number: "1363", serviceType: "tourist"},
	{name: "Senior Citizen Helpline", number: "14567", serviceType: "senior"},
	{name: "Road Accident Emergency", number: "1073", serviceType: "accident"},
	{name: "Railway Protection", number: "182", serviceType: "railway"},
	{name: "Anti-Corruption", number: "1064", serviceType: "other"},
	{name: "Cyber Crime", number: "1930", serviceType: "cyber"},
	{name: "Disaster Management", number: "1078", serviceType: "disaster"},
}

// City control rooms and major hospitals; only inserted when the city exists
// in the catalog.
var cityContacts = []seedContact{
	{city: "Delhi", name: "Delhi Police Control Room", number: "011-23469200", serviceType: "police"},
	{city: "Delhi", name: "Traffic Police", number: "011-25844444", serviceType: "traffic"},
	{city: "Delhi", name: "Women Helpdesk", number: "011-23317054", serviceType: "women"},
	{city: "Delhi", name: "AIIMS Emergency", number: "011-26588500", serviceType: "hospital"},
	{city: "Delhi", name: "Safdarjung Hospital", number: "011-26707447", serviceType: "hospital"},
	{city: "Mumbai", name: "Mumbai Police Control Room", number: "022-22621855", serviceType: "police"},
	{city: "Mumbai", name: "Traffic Police", number: "022-24937747", serviceType: "traffic"},
	{city: "Mumbai", name: "Coastal Security", number: "1093", serviceType: "police"},
	{city: "Mumbai", name: "JJ Hospital Emergency", number: "022-23735555", serviceType: "hospital"},
	{city: "Mumbai", name: "KEM Hospital", number: "022-24136051", serviceType: "hospital"},
	{city: "Bangalore", name: "Bangalore Police Control Room", number: "080-22942222", serviceType: "police"},
	{city: "Bangalore", name: "Traffic Police", number: "080-22868444", serviceType: "traffic"},
	{city: "Bangalore", name: "Victoria Hospital", number: "080-26701150", serviceType: "hospital"},
	{city: "Chennai", name: "Chennai Police Control Room", number: "044-23452365", serviceType: "police"},
	{city: "Chennai", name: "Traffic Police", number: "044-23452359", serviceType: "traffic"},
	{city: "Chennai", name: "Government General Hospital", number: "044-25305000", serviceType: "hospital"},
	{city: "Kolkata", name: "Kolkata Police Control Room", number: "033-22145060", serviceType: "police"},
	{city: "Kolkata", name: "Traffic Police", number: "033-22145001", serviceType: "traffic"},
	{city: "Hyderabad", name: "Hyderabad Police Control Room", number: "040-27852482", serviceType: "police"},
	{city: "Hyderabad", name: "Traffic Police", number: "040-23243333", serviceType: "traffic"},
	{city: "Jaipur", name: "Jaipur Police Control Room", number: "0141-2565555", serviceType: "police"},
	{city: "Jaipur", name: "Traffic Police", number: "0141-5105100", serviceType: "traffic"},
	{city: "Ahmedabad", name: "Ahmedabad Police Control Room", number: "079-25393939", serviceType: "police"},
	{city: "Pune", name: "Pune Police Control Room", number: "020-26122880", serviceType: "police"},
	{city: "Pune", name: "Traffic Police", number: "020-26050550", serviceType: "traffic"},
	{city: "Panaji", name: "Goa Police Control Room", number: "0832-2420444", serviceType: "police"},
	{city: "Panaji", name: "Tourist Police", number: "1800-233-4444", serviceType: "tourist"},
	{city: "Lucknow", name: "Lucknow Police Control Room", number: "0522-2621666", serviceType: "police"},
	{city: "Varanasi", name: "Varanasi Police Control Room", number: "0542-2505505", serviceType: "police"},
	{city: "Agra", name: "Agra Police Control Room", number: "0562-2266606", serviceType: "police"},
	{city: "Agra", name: "Tourist Police", number: "0562-2421204", serviceType: "tourist"},
	{city: "Amritsar", name: "Amritsar Police Control Room", number: "0183-2563101", serviceType: "police"},
	{city: "Kochi", name: "Kochi Police Control Room", number: "0484-2394500", serviceType: "police"},
	{city: "Udaipur", name: "Udaipur Police Control Room", number: "0294-2414600", serviceType: "police"},
}

// SeedEmergencyContacts inserts the helpline dataset, skipping numbers that
// are already present so repeated runs stay idempotent. City-scoped contacts
// are only created for cities that exist in the catalog.
func SeedEmergencyContacts(ctx context.Context, contacts repository.EmergencyContactRepository, cities repository.CityRepository) error {
	for _, entry := range nationalHelplines {
		exists, err := contacts.NumberExists(ctx, entry.number)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		contact := &domain.EmergencyContact{
			Name:        entry.name,
			Number:      entry.number,
			ServiceType: entry.serviceType,
			IsNational:  true,
		}
		if _, err := contacts.Create(ctx, contact); err != nil {
			return fmt.Errorf("seed national contact %s: %w", entry.number, err)
		}
	}

	for _, entry := range cityContacts {
		city, err := cities.GetByName(ctx, entry.city)
		if errors.Is(err, repository.ErrNotFound) {
			continue // city not in catalog yet
		}
		if err != nil {
			return err
		}
		exists, err := contacts.NumberExists(ctx, entry.number)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		contact := &domain.EmergencyContact{
			CityID:      &city.ID,
			Name:        entry.name,
			Number:      entry.number,
			ServiceType: entry.serviceType,
			IsNational:  false,
		}
		if _, err := contacts.Create(ctx, contact); err != nil {
			return fmt.Errorf("seed city contact %s: %w", entry.number, err)
		}
	}

	return nil
}
