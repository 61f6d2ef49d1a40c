package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last probe.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	mu.Lock()
	currentHealth = h
	mu.Unlock()
}

// Pinger is the subset of a Mongo client the monitor needs.
type Pinger interface {
	Ping(ctx context.Context, rp interface{}) error
}

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) Ping(ctx context.Context, _ interface{}) error {
	return p.client.Ping(ctx, nil)
}

// CheckHealth probes every dependency once.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, db Pinger) HealthStatus {
	var redisHealth []bool
	for _, client := range redisClients {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pctx).Err()
		cancel()
		redisHealth = append(redisHealth, err == nil)
	}

	mongoHealthy := false
	if db != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		mongoHealthy = db.Ping(pctx, nil) == nil
		cancel()
	}

	return HealthStatus{Mongo: mongoHealthy, Redis: redisHealth, CheckedAt: time.Now()}
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		pinger := mongoPinger{client: mongoClient}
		setHealthStatus(CheckHealth(ctx, redisClients, pinger))

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status := CheckHealth(ctx, redisClients, pinger)
				if !status.Healthy() {
					GetLogger().Warn("dependency health check failed",
						zap.Bool("mongo", status.Mongo), zap.Bools("redis", status.Redis))
				}
				setHealthStatus(status)
			}
		}
	}()
}
