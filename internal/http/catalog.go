package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

type createCityRequest struct {
	Name       string   `json:"name" binding:"required"`
	State      string   `json:"state" binding:"required"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Population *int64   `json:"population"`
	CrimeIndex *float64 `json:"crime_index"`
}

type createAttractionRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Rating   *float64 `json:"rating"`
}

type createCrimeStatisticRequest struct {
	Year      int     `json:"year" binding:"required"`
	CrimeRate float64 `json:"crime_rate"`
}

type CityResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	State       string                   `json:"state"`
	Latitude    float64                  `json:"latitude"`
	Longitude   float64                  `json:"longitude"`
	Population  *int64                   `json:"population"`
	CrimeIndex  float64                  `json:"crime_index"`
	SafetyZone  domain.SafetyZone        `json:"safety_zone"`
	Attractions []AttractionResponse     `json:"attractions,omitempty"`
	CrimeStats  []CrimeStatisticResponse `json:"crime_statistics,omitempty"`
}

type AttractionResponse struct {
	ID       int64    `json:"id"`
	CityID   int64    `json:"city_id"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Rating   *float64 `json:"rating"`
}

type CrimeStatisticResponse struct {
	ID        int64   `json:"id"`
	CityID    int64   `json:"city_id"`
	Year      int     `json:"year"`
	CrimeRate float64 `json:"crime_rate"`
}

type EmergencyContactResponse struct {
	ID          int64  `json:"id"`
	CityID      *int64 `json:"city_id"`
	Name        string `json:"name"`
	Number      string `json:"number"`
	ServiceType string `json:"service_type"`
	IsNational  bool   `json:"is_national"`
}

func (h *Handler) createCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city := &domain.City{
		Name:       req.Name,
		State:      req.State,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Population: req.Population,
	}
	if req.CrimeIndex != nil {
		city.CrimeIndex = *req.CrimeIndex
	}

	created, err := h.catalog.CreateCity(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cityToResponse(*created))
}

func (h *Handler) listCities(c *gin.Context) {
	cities, err := h.catalog.ListCities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]CityResponse, len(cities))
	for i := range cities {
		resp[i] = cityToResponse(cities[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCity(c *gin.Context) {
	id, ok := cityIDParam(c)
	if !ok {
		return
	}

	city, err := h.catalog.GetCity(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cityToResponse(*city))
}

func (h *Handler) listAttractions(c *gin.Context) {
	id, ok := cityIDParam(c)
	if !ok {
		return
	}

	attractions, err := h.catalog.ListAttractions(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]AttractionResponse, len(attractions))
	for i := range attractions {
		resp[i] = attractionToResponse(attractions[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) addAttraction(c *gin.Context) {
	id, ok := cityIDParam(c)
	if !ok {
		return
	}

	var req createAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attraction := &domain.Attraction{
		CityID:   id,
		Name:     req.Name,
		Category: req.Category,
		Rating:   req.Rating,
	}

	created, err := h.catalog.AddAttraction(c.Request.Context(), attraction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, attractionToResponse(*created))
}

func (h *Handler) listCrimeStatistics(c *gin.Context) {
	id, ok := cityIDParam(c)
	if !ok {
		return
	}

	stats, err := h.catalog.ListCrimeStatistics(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]CrimeStatisticResponse, len(stats))
	for i := range stats {
		resp[i] = crimeStatisticToResponse(stats[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) addCrimeStatistic(c *gin.Context) {
	id, ok := cityIDParam(c)
	if !ok {
		return
	}

	var req createCrimeStatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stat := &domain.CrimeStatistic{
		CityID:    id,
		Year:      req.Year,
		CrimeRate: req.CrimeRate,
	}

	created, err := h.catalog.AddCrimeStatistic(c.Request.Context(), stat)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, crimeStatisticToResponse(*created))
}

func (h *Handler) listEmergencyContacts(c *gin.Context) {
	var cityID *int64
	if raw := c.Query("city_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city_id"})
			return
		}
		cityID = &id
	}

	contacts, err := h.catalog.ListEmergencyContacts(c.Request.Context(), cityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]EmergencyContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = EmergencyContactResponse{
			ID:          contacts[i].ID,
			CityID:      contacts[i].CityID,
			Name:        contacts[i].Name,
			Number:      contacts[i].Number,
			ServiceType: contacts[i].ServiceType,
			IsNational:  contacts[i].IsNational,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func cityIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city id"})
		return 0, false
	}
	return id, true
}

func cityToResponse(city domain.City) CityResponse {
	resp := CityResponse{
		ID:         city.ID,
		Name:       city.Name,
		State:      city.State,
		Latitude:   city.Latitude,
		Longitude:  city.Longitude,
		Population: city.Population,
		CrimeIndex: city.CrimeIndex,
		SafetyZone: city.SafetyZone,
	}
	for _, attraction := range city.Attractions {
		resp.Attractions = append(resp.Attractions, attractionToResponse(attraction))
	}
	for _, stat := range city.CrimeStats {
		resp.CrimeStats = append(resp.CrimeStats, crimeStatisticToResponse(stat))
	}
	return resp
}

func attractionToResponse(attraction domain.Attraction) AttractionResponse {
	return AttractionResponse{
		ID:       attraction.ID,
		CityID:   attraction.CityID,
		Name:     attraction.Name,
		Category: attraction.Category,
		Rating:   attraction.Rating,
	}
}

func crimeStatisticToResponse(stat domain.CrimeStatistic) CrimeStatisticResponse {
	return CrimeStatisticResponse{
		ID:        stat.ID,
		CityID:    stat.CityID,
		Year:      stat.Year,
		CrimeRate: stat.CrimeRate,
	}
}
