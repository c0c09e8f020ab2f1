// File: medibook/utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"medibook/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. It also holds the booking
// quarantine keys set when an integrity violation is detected.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// QuarantineTTL bounds how long a (doctor, day) pair stays write-blocked
// after an integrity violation before an operator has to intervene anyway.
const QuarantineTTL = 24 * time.Hour

func quarantineKey(doctorID, dayKey string) string {
	return fmt.Sprintf("quarantine:%s:%s", doctorID, dayKey)
}

// QuarantineBookingDay blocks further bookings for the doctor/day pair.
func QuarantineBookingDay(ctx context.Context, client *redis.Client, doctorID, dayKey string) error {
	return client.Set(ctx, quarantineKey(doctorID, dayKey), "1", QuarantineTTL).Err()
}

// IsBookingDayQuarantined reports whether the doctor/day pair is write-blocked.
func IsBookingDayQuarantined(ctx context.Context, client *redis.Client, doctorID, dayKey string) (bool, error) {
	n, err := client.Exists(ctx, quarantineKey(doctorID, dayKey)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BookingQuarantine adapts the Redis quarantine keys to the booking
// service's quarantine dependency.
type BookingQuarantine struct {
	Client *redis.Client
}

func (q *BookingQuarantine) Block(ctx context.Context, doctorID, dayKey string) error {
	return QuarantineBookingDay(ctx, q.Client, doctorID, dayKey)
}

func (q *BookingQuarantine) IsBlocked(ctx context.Context, doctorID, dayKey string) (bool, error) {
	return IsBookingDayQuarantined(ctx, q.Client, doctorID, dayKey)
}
