package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parkspot/parkspot-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ParkingLocation{},
		&models.ParkingSlot{},
		&models.Booking{},
		&models.Payment{},
		&models.Notification{},
	))

	return db
}

// fakeAuth stands in for the JWT middleware in handler tests.
func fakeAuth(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newGetRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func httptestDelete(path string) *http.Request {
	return httptest.NewRequest(http.MethodDelete, path, nil)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedLocation(t *testing.T, db *gorm.DB) (models.ParkingLocation, models.ParkingSlot) {
	t.Helper()

	location := models.ParkingLocation{
		Name:         "Central Parking",
		Address:      "1 Main St",
		Latitude:     12.9716,
		Longitude:    77.5946,
		PricePerHour: 1000,
	}
	require.NoError(t, db.Create(&location).Error)

	slot := models.ParkingSlot{
		LocationID:  location.ID,
		SlotNumber:  "A1",
		IsAvailable: true,
		VehicleType: models.VehicleTypeFourWheeler,
	}
	require.NoError(t, db.Create(&slot).Error)

	return location, slot
}
