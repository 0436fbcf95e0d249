package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/handlers"
	"github.com/parkspot/parkspot-backend/internal/models"
)

func newParkingRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.GET("/api/parking/locations", handlers.GetAllLocations(db))
	router.GET("/api/parking/locations/:id", handlers.GetLocation(db))
	router.GET("/api/parking/locations/:id/slots", handlers.GetLocationSlots(db))
	router.GET("/api/parking/nearby", handlers.GetNearbyLocations(db))

	admin := router.Group("/api/admin/parking", fakeAuth(1, true))
	admin.POST("/locations", handlers.CreateLocation(db))
	admin.PUT("/locations/:id", handlers.UpdateLocation(db))
	admin.DELETE("/locations/:id", handlers.DeleteLocation(db))
	admin.POST("/locations/:id/slots", handlers.CreateSlot(db))
	admin.PUT("/slots/:id", handlers.UpdateSlot(db))
	admin.DELETE("/slots/:id", handlers.DeleteSlot(db))
	return router
}

func TestLocationCRUDAndFacilities(t *testing.T) {
	db := newTestDB(t)
	router := newParkingRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/admin/parking/locations", gin.H{
		"name":         "Mall Parking",
		"address":      "5 Ring Rd",
		"latitude":     12.98,
		"longitude":    77.60,
		"pricePerHour": 800,
		"facilities":   []string{"ev-charging", "covered"},
	})
	require.Equal(t, 201, w.Code)

	location := decodeBody(t, w)["location"].(map[string]interface{})
	require.Equal(t, "Mall Parking", location["name"])
	require.Equal(t, []interface{}{"ev-charging", "covered"}, location["facilities"])
	id := int(location["id"].(float64))

	// Facilities survive the round trip through storage
	w = serve(router, newGetRequest(fmt.Sprintf("/api/parking/locations/%d", id)))
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	location = body["location"].(map[string]interface{})
	require.Equal(t, []interface{}{"ev-charging", "covered"}, location["facilities"])
	require.EqualValues(t, 0, body["totalSlots"])

	// Partial update leaves the rest untouched
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/admin/parking/locations/%d", id), gin.H{
		"pricePerHour": 900,
	})
	require.Equal(t, 200, w.Code)
	location = decodeBody(t, w)["location"].(map[string]interface{})
	require.EqualValues(t, 900, location["pricePerHour"])
	require.Equal(t, "Mall Parking", location["name"])

	// Missing required fields on create
	w = doJSON(t, router, http.MethodPost, "/api/admin/parking/locations", gin.H{
		"name": "No Address",
	})
	require.Equal(t, 400, w.Code)

	w = serve(router, newGetRequest("/api/parking/locations/9999"))
	require.Equal(t, 404, w.Code)
	require.Equal(t, "Location not found", decodeBody(t, w)["message"])
}

func TestSlotCRUD(t *testing.T) {
	db := newTestDB(t)
	location, _ := seedLocation(t, db)
	router := newParkingRouter(db)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/admin/parking/locations/%d/slots", location.ID), gin.H{
		"slotNumber":  "B2",
		"vehicleType": "two-wheeler",
	})
	require.Equal(t, 201, w.Code)
	slot := decodeBody(t, w)["slot"].(map[string]interface{})
	require.Equal(t, "B2", slot["slotNumber"])
	require.Equal(t, "two-wheeler", slot["vehicleType"])
	require.Equal(t, true, slot["isAvailable"])
	slotID := int(slot["id"].(float64))

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/admin/parking/locations/%d/slots", location.ID), gin.H{
		"slotNumber":  "B3",
		"vehicleType": "bus",
	})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Invalid vehicle type", decodeBody(t, w)["message"])

	// Admin availability override
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/admin/parking/slots/%d", slotID), gin.H{
		"isAvailable": false,
	})
	require.Equal(t, 200, w.Code)
	slot = decodeBody(t, w)["slot"].(map[string]interface{})
	require.Equal(t, false, slot["isAvailable"])

	w = serve(router, newGetRequest(fmt.Sprintf("/api/parking/locations/%d/slots", location.ID)))
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 2, body["totalSlots"])
	require.EqualValues(t, 1, body["availableSlots"])

	req := httptestDelete(fmt.Sprintf("/api/admin/parking/slots/%d", slotID))
	w = serve(router, req)
	require.Equal(t, 200, w.Code)

	var count int64
	db.Model(&models.ParkingSlot{}).Where("id = ?", slotID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestDeleteLocationCascadesSlots(t *testing.T) {
	db := newTestDB(t)
	location, slot := seedLocation(t, db)
	router := newParkingRouter(db)

	w := serve(router, httptestDelete(fmt.Sprintf("/api/admin/parking/locations/%d", location.ID)))
	require.Equal(t, 200, w.Code)

	var count int64
	db.Model(&models.ParkingSlot{}).Where("id = ?", slot.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestNearbyEndpoint(t *testing.T) {
	db := newTestDB(t)
	seedLocation(t, db)
	far := models.ParkingLocation{Name: "Airport", Address: "Devanahalli", Latitude: 13.1989, Longitude: 77.7068, PricePerHour: 1200}
	require.NoError(t, db.Create(&far).Error)
	router := newParkingRouter(db)

	w := serve(router, newGetRequest("/api/parking/nearby?lat=12.9716&lng=77.5946&radius=5"))
	require.Equal(t, 200, w.Code)

	locations := decodeBody(t, w)["locations"].([]interface{})
	require.Len(t, locations, 1)
	entry := locations[0].(map[string]interface{})
	require.Equal(t, "Central Parking", entry["name"])
	require.EqualValues(t, 0, entry["distance"])
	require.EqualValues(t, 1, entry["availableSlots"])
	require.EqualValues(t, 1, entry["totalSlots"])

	// Radius defaults to 5 km
	w = serve(router, newGetRequest("/api/parking/nearby?lat=12.9716&lng=77.5946"))
	require.Equal(t, 200, w.Code)
	require.Len(t, decodeBody(t, w)["locations"].([]interface{}), 1)

	w = serve(router, newGetRequest("/api/parking/nearby?lat=abc&lng=77.5946"))
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Invalid coordinates", decodeBody(t, w)["message"])

	w = serve(router, newGetRequest("/api/parking/nearby?lat=95&lng=77.5946"))
	require.Equal(t, 400, w.Code)

	w = serve(router, newGetRequest("/api/parking/nearby?lat=12.9716&lng=77.5946&radius=-2"))
	require.Equal(t, 400, w.Code)
}
