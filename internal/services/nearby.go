package services

import (
	"context"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/pkg/utils"
)

// DefaultNearbyRadiusKm is used when a nearby query gives no radius.
const DefaultNearbyRadiusKm = 5.0

// NearbyLocation is one entry of a nearby-locations result.
type NearbyLocation struct {
	Location       models.ParkingLocation
	Distance       float64 // kilometers, rounded to 2 decimals
	AvailableSlots int
	TotalSlots     int
}

// FindNearbyLocations returns all locations within radiusKm of the given
// point with live slot counts, sorted ascending by distance. Ties keep
// the original ordering.
func FindNearbyLocations(ctx context.Context, db *gorm.DB, lat, lng, radiusKm float64) ([]NearbyLocation, error) {
	if !utils.ValidCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm < 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, ErrInvalidRadius
	}

	var locations []models.ParkingLocation
	if err := db.WithContext(ctx).Preload("Slots").Find(&locations).Error; err != nil {
		return nil, err
	}

	nearby := make([]NearbyLocation, 0, len(locations))
	for _, location := range locations {
		distance := utils.HaversineDistance(lat, lng, location.Latitude, location.Longitude)
		if distance > radiusKm {
			continue
		}

		available := 0
		for _, slot := range location.Slots {
			if slot.IsAvailable {
				available++
			}
		}

		nearby = append(nearby, NearbyLocation{
			Location:       location,
			Distance:       math.Round(distance*100) / 100,
			AvailableSlots: available,
			TotalSlots:     len(location.Slots),
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})

	return nearby, nil
}
