package database

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"
)

// HealthChecker monitors the database connection in the background and
// lets query wrappers verify the connection before using it.
type HealthChecker struct {
	db            *sql.DB
	checkInterval time.Duration
	stopChan      chan struct{}
	ticker        *time.Ticker
	mu            sync.RWMutex
	isHealthy     bool
}

// NewHealthChecker creates a health checker for the given connection.
func NewHealthChecker(db *sql.DB, checkInterval time.Duration) *HealthChecker {
	return &HealthChecker{
		db:            db,
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
		isHealthy:     true,
	}
}

// Start begins the periodic connection check.
func (hc *HealthChecker) Start() {
	hc.ticker = time.NewTicker(hc.checkInterval)

	go func() {
		for {
			select {
			case <-hc.stopChan:
				hc.ticker.Stop()
				return
			case <-hc.ticker.C:
				hc.checkConnection()
			}
		}
	}()
}

// Stop stops the periodic connection check.
func (hc *HealthChecker) Stop() {
	close(hc.stopChan)
}

func (hc *HealthChecker) checkConnection() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := hc.db.PingContext(ctx)

	hc.mu.Lock()
	defer hc.mu.Unlock()

	if err != nil {
		log.Printf("❌ Database connection health check failed: %v", err)
		hc.isHealthy = false
		return
	}

	if !hc.isHealthy {
		log.Println("✓ Database connection restored")
	}
	hc.isHealthy = true
}

// IsHealthy returns the last observed health status.
func (hc *HealthChecker) IsHealthy() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.isHealthy
}

// EnsureConnection verifies the connection is usable, pinging it again if
// the last periodic check failed.
func (hc *HealthChecker) EnsureConnection(ctx context.Context) error {
	if hc.IsHealthy() {
		return nil
	}

	if err := hc.db.PingContext(ctx); err != nil {
		return err
	}

	hc.mu.Lock()
	hc.isHealthy = true
	hc.mu.Unlock()

	return nil
}
