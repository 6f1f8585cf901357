package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis      []bool    `json:"redis"`
	BookingAPI bool      `json:"bookingApi"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// APIPinger reports whether the remote booking API is reachable.
type APIPinger interface {
	Ping(ctx context.Context) error
}

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClients []*redis.Client, api APIPinger) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool

			for _, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth = append(redisHealth, err == nil)
			}

			apiHealthy := api.Ping(ctx) == nil

			mu.Lock()
			currentHealth = HealthStatus{
				Redis:      redisHealth,
				BookingAPI: apiHealthy,
				CheckedAt:  time.Now(),
			}
			mu.Unlock()
		}
	}()
}
