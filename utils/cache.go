// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"campsite/config"

	"github.com/go-redis/redis/v8"
)

var (
	// ReservationCacheClient holds the in-progress reservation snapshots.
	ReservationCacheClient *redis.Client
	// RefundCacheClient holds refund verification snapshots.
	RefundCacheClient *redis.Client
	// RescheduleCacheClient holds reschedule verification snapshots.
	RescheduleCacheClient *redis.Client
)

// InitRedis initializes the Redis clients for every snapshot store.
func InitRedis() {
	ReservationCacheClient = newClient(config.AppConfig.RedisReservationDB)
	RefundCacheClient = newClient(config.AppConfig.RedisRefundDB)
	RescheduleCacheClient = newClient(config.AppConfig.RedisRescheduleDB)
}

func newClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// GetReservationCacheClient returns the reservation snapshot client.
func GetReservationCacheClient() *redis.Client {
	if ReservationCacheClient == nil {
		InitRedis()
	}
	return ReservationCacheClient
}

// GetRefundCacheClient returns the refund snapshot client.
func GetRefundCacheClient() *redis.Client {
	if RefundCacheClient == nil {
		InitRedis()
	}
	return RefundCacheClient
}

// GetRescheduleCacheClient returns the reschedule snapshot client.
func GetRescheduleCacheClient() *redis.Client {
	if RescheduleCacheClient == nil {
		InitRedis()
	}
	return RescheduleCacheClient
}
