package domain

// SafetyZone buckets a city's crime index into a coarse traffic-light rating.
type SafetyZone string

const (
	ZoneGreen  SafetyZone = "green"
	ZoneOrange SafetyZone = "orange"
	ZoneRed    SafetyZone = "red"
)

// ZoneForCrimeIndex maps a 0-100 crime index to its safety zone.
func ZoneForCrimeIndex(index float64) SafetyZone {
	switch {
	case index < 30:
		return ZoneGreen
	case index < 70:
		return ZoneOrange
	default:
		return ZoneRed
	}
}

// City is a catalog entry with its derived safety rating. Attractions and
// CrimeStats are populated only on detail lookups.
type City struct {
	ID          int64
	Name        string
	State       string
	Latitude    float64
	Longitude   float64
	Population  *int64
	CrimeIndex  float64
	SafetyZone  SafetyZone
	Attractions []Attraction
	CrimeStats  []CrimeStatistic
}

// CrimeStatistic records a city's reported crime rate for one year.
type CrimeStatistic struct {
	ID        int64
	CityID    int64
	Year      int
	CrimeRate float64
}

// Attraction is a tourist point of interest within a city.
type Attraction struct {
	ID       int64
	CityID   int64
	Name     string
	Category string
	Rating   *float64
}

// EmergencyContact is a helpline number, either national or tied to a city.
type EmergencyContact struct {
	ID          int64
	CityID      *int64
	Name        string
	Number      string
	ServiceType string
	IsNational  bool
}
