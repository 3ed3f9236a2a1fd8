package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartSweepWorker starts a background worker that periodically locks pots
// past their betting cutoff and finalizes resolved pots past their dispute
// window. Returns a cleanup function to stop the worker gracefully.
func StartSweepWorker(ctx context.Context, sweeper SweepService, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})

	runSweep := func() {
		now := time.Now()

		if _, err := sweeper.LockExpiredPots(context.Background(), now); err != nil {
			log.Errorf("Error locking expired pots: %v", err)
		}

		if _, err := sweeper.SweepExpiredDisputes(context.Background(), now); err != nil {
			log.Errorf("Error sweeping expired disputes: %v", err)
		}
	}

	go func() {
		log.Info("Sweep worker started")

		// Run immediately on startup
		runSweep()

		for {
			select {
			case <-ctx.Done():
				log.Info("Sweep worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Sweep worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				runSweep()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
