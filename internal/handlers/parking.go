package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/internal/services"
)

// GetAllLocations lists every parking location
func GetAllLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var locations []models.ParkingLocation
		if err := db.Find(&locations).Error; err != nil {
			c.JSON(500, gin.H{"message": "Internal server error"})
			return
		}

		out := make([]gin.H, 0, len(locations))
		for i := range locations {
			out = append(out, locationJSON(&locations[i]))
		}

		c.JSON(200, gin.H{"locations": out})
	}
}

// GetLocation returns one location with its slots and availability counts
func GetLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationId := c.Param("id")

		var location models.ParkingLocation
		if err := db.First(&location, locationId).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		var slots []models.ParkingSlot
		if err := db.Where("location_id = ?", location.ID).Find(&slots).Error; err != nil {
			c.JSON(500, gin.H{"message": "Internal server error"})
			return
		}

		available := 0
		for _, slot := range slots {
			if slot.IsAvailable {
				available++
			}
		}

		if services.RedisClient != nil {
			services.SetLocationAvailability(c.Request.Context(), location.ID, available, len(slots))
		}

		c.JSON(200, gin.H{
			"location":       locationJSON(&location),
			"slots":          slotsJSON(slots),
			"availableSlots": available,
			"totalSlots":     len(slots),
		})
	}
}

// GetNearbyLocations returns locations within the requested radius of a
// point, sorted by distance
func GetNearbyLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, errLat := strconv.ParseFloat(c.DefaultQuery("lat", "0"), 64)
		lng, errLng := strconv.ParseFloat(c.DefaultQuery("lng", "0"), 64)
		radius, errRadius := strconv.ParseFloat(c.DefaultQuery("radius", "5"), 64)
		if errLat != nil || errLng != nil || errRadius != nil {
			c.JSON(400, gin.H{"message": "Invalid coordinates"})
			return
		}

		ctx := c.Request.Context()

		if services.RedisClient != nil {
			if cached, err := services.GetCachedNearbyLocations(ctx, lat, lng, radius); err == nil {
				c.JSON(200, gin.H{"locations": cached})
				return
			}
		}

		nearby, err := services.FindNearbyLocations(ctx, db, lat, lng, radius)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(nearby))
		for i := range nearby {
			entry := locationJSON(&nearby[i].Location)
			entry["distance"] = nearby[i].Distance
			entry["availableSlots"] = nearby[i].AvailableSlots
			entry["totalSlots"] = nearby[i].TotalSlots
			out = append(out, entry)
		}

		if services.RedisClient != nil {
			if err := services.CacheNearbyLocations(ctx, lat, lng, radius, out); err != nil {
				log.Printf("Failed to cache nearby locations: %v", err)
			}
		}

		c.JSON(200, gin.H{"locations": out})
	}
}

// CreateLocation creates a parking location (admin only)
func CreateLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name         string   `json:"name" binding:"required"`
			Address      string   `json:"address" binding:"required"`
			Latitude     *float64 `json:"latitude" binding:"required"`
			Longitude    *float64 `json:"longitude" binding:"required"`
			PricePerHour *int     `json:"pricePerHour" binding:"required"`
			ImageURL     string   `json:"imageUrl"`
			Facilities   []string `json:"facilities"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		location := models.ParkingLocation{
			Name:         input.Name,
			Address:      input.Address,
			Latitude:     *input.Latitude,
			Longitude:    *input.Longitude,
			PricePerHour: *input.PricePerHour,
			ImageURL:     input.ImageURL,
		}
		location.SetFacilities(input.Facilities)

		if err := db.Create(&location).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to create location"})
			return
		}

		c.JSON(201, gin.H{
			"message":  "Location created successfully",
			"location": locationJSON(&location),
		})
	}
}

// UpdateLocation updates a parking location (admin only)
func UpdateLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.ParkingLocation
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		var input struct {
			Name         *string   `json:"name"`
			Address      *string   `json:"address"`
			Latitude     *float64  `json:"latitude"`
			Longitude    *float64  `json:"longitude"`
			PricePerHour *int      `json:"pricePerHour"`
			ImageURL     *string   `json:"imageUrl"`
			Facilities   *[]string `json:"facilities"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		if input.Name != nil {
			location.Name = *input.Name
		}
		if input.Address != nil {
			location.Address = *input.Address
		}
		if input.Latitude != nil {
			location.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			location.Longitude = *input.Longitude
		}
		if input.PricePerHour != nil {
			location.PricePerHour = *input.PricePerHour
		}
		if input.ImageURL != nil {
			location.ImageURL = *input.ImageURL
		}
		if input.Facilities != nil {
			location.SetFacilities(*input.Facilities)
		}

		if err := db.Save(&location).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to update location"})
			return
		}

		c.JSON(200, gin.H{
			"message":  "Location updated successfully",
			"location": locationJSON(&location),
		})
	}
}

// DeleteLocation removes a location and its slots (admin only)
func DeleteLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.ParkingLocation
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("location_id = ?", location.ID).Delete(&models.ParkingSlot{}).Error; err != nil {
				return err
			}
			return tx.Delete(&location).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to delete location"})
			return
		}

		if location.ImageURL != "" {
			if err := services.DeleteImage(location.ImageURL); err != nil {
				log.Printf("Failed to delete location image: %v", err)
			}
		}

		c.JSON(200, gin.H{"message": "Location deleted successfully"})
	}
}

// UploadLocationImage stores a location image and saves its URL (admin only)
func UploadLocationImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.ParkingLocation
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"message": "Missing image file"})
			return
		}

		path, err := services.UploadImage(file, "locations")
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to upload image"})
			return
		}

		if location.ImageURL != "" {
			if err := services.DeleteImage(location.ImageURL); err != nil {
				log.Printf("Failed to delete old location image: %v", err)
			}
		}

		location.ImageURL = services.GetImageURL(path)
		if err := db.Save(&location).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to update location"})
			return
		}

		c.JSON(200, gin.H{
			"message":  "Image uploaded successfully",
			"location": locationJSON(&location),
		})
	}
}

// GetLocationSlots lists the slots of one location with availability counts
func GetLocationSlots(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.ParkingLocation
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		var slots []models.ParkingSlot
		if err := db.Where("location_id = ?", location.ID).Find(&slots).Error; err != nil {
			c.JSON(500, gin.H{"message": "Internal server error"})
			return
		}

		available := 0
		for _, slot := range slots {
			if slot.IsAvailable {
				available++
			}
		}

		c.JSON(200, gin.H{
			"slots":          slotsJSON(slots),
			"availableSlots": available,
			"totalSlots":     len(slots),
		})
	}
}

// CreateSlot adds a slot to a location (admin only)
func CreateSlot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.ParkingLocation
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Location not found"})
			return
		}

		var input struct {
			SlotNumber  string `json:"slotNumber" binding:"required"`
			IsAvailable *bool  `json:"isAvailable"`
			VehicleType string `json:"vehicleType"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": "Missing required field: slotNumber"})
			return
		}

		vehicleType := input.VehicleType
		if vehicleType == "" {
			vehicleType = string(models.VehicleTypeFourWheeler)
		}
		if !models.IsValidVehicleType(vehicleType) {
			c.JSON(400, gin.H{"message": "Invalid vehicle type"})
			return
		}

		available := true
		if input.IsAvailable != nil {
			available = *input.IsAvailable
		}

		slot := models.ParkingSlot{
			LocationID:  location.ID,
			SlotNumber:  input.SlotNumber,
			IsAvailable: available,
			VehicleType: models.VehicleType(vehicleType),
		}

		if err := db.Create(&slot).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to create slot"})
			return
		}

		c.JSON(201, gin.H{
			"message": "Slot created successfully",
			"slot":    slotJSON(&slot),
		})
	}
}

// UpdateSlot edits a slot, including the admin availability override
func UpdateSlot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var slot models.ParkingSlot
		if err := db.First(&slot, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Slot not found"})
			return
		}

		var input struct {
			SlotNumber  *string `json:"slotNumber"`
			IsAvailable *bool   `json:"isAvailable"`
			VehicleType *string `json:"vehicleType"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		if input.SlotNumber != nil {
			slot.SlotNumber = *input.SlotNumber
		}
		if input.IsAvailable != nil {
			slot.IsAvailable = *input.IsAvailable
		}
		if input.VehicleType != nil {
			if !models.IsValidVehicleType(*input.VehicleType) {
				c.JSON(400, gin.H{"message": "Invalid vehicle type"})
				return
			}
			slot.VehicleType = models.VehicleType(*input.VehicleType)
		}

		slot.LastUpdated = nowUTC()
		if err := db.Save(&slot).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to update slot"})
			return
		}

		c.JSON(200, gin.H{
			"message": "Slot updated successfully",
			"slot":    slotJSON(&slot),
		})
	}
}

// DeleteSlot removes a slot (admin only)
func DeleteSlot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var slot models.ParkingSlot
		if err := db.First(&slot, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"message": "Slot not found"})
			return
		}

		if err := db.Delete(&slot).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to delete slot"})
			return
		}

		c.JSON(200, gin.H{"message": "Slot deleted successfully"})
	}
}
