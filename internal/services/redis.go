package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// nearbyCacheKey rounds the query point so nearby requests from almost the
// same position share a cache entry.
func nearbyCacheKey(lat, lng, radiusKm float64) string {
	return fmt.Sprintf("nearby:locations:%.4f:%.4f:%.1f", lat, lng, radiusKm)
}

// CacheNearbyLocations stores a serialized nearby-locations response.
// Availability counts inside may go slightly stale within the TTL.
func CacheNearbyLocations(ctx context.Context, lat, lng, radiusKm float64, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, nearbyCacheKey(lat, lng, radiusKm), data, time.Minute).Err()
}

// GetCachedNearbyLocations retrieves a cached nearby-locations response.
func GetCachedNearbyLocations(ctx context.Context, lat, lng, radiusKm float64) ([]map[string]interface{}, error) {
	data, err := RedisClient.Get(ctx, nearbyCacheKey(lat, lng, radiusKm)).Result()
	if err != nil {
		return nil, err
	}

	var locations []map[string]interface{}
	if err := json.Unmarshal([]byte(data), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// SetLocationAvailability caches the availability snapshot for a location
func SetLocationAvailability(ctx context.Context, locationID uint, available, total int) error {
	payload := map[string]int{
		"availableSlots": available,
		"totalSlots":     total,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("location:availability:%d", locationID)
	return RedisClient.Set(ctx, key, data, time.Minute).Err()
}

// GetLocationAvailability retrieves the cached availability snapshot
func GetLocationAvailability(ctx context.Context, locationID uint) (available, total int, err error) {
	key := fmt.Sprintf("location:availability:%d", locationID)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	var payload map[string]int
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return 0, 0, err
	}
	return payload["availableSlots"], payload["totalSlots"], nil
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}
