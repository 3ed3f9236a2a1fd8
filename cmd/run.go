package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"sidepot/config"
	"sidepot/database"
	"sidepot/events"
	"sidepot/repository"
	"sidepot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting side pot engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()

	// Attach the external NATS feed when configured
	var natsPublisher *events.NATSPublisher
	if cfg.NATSURL != "" {
		log.Println("Connecting to NATS...")
		natsPublisher, err = events.NewNATSPublisher(cfg.NATSURL, "sidepot")
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		natsPublisher.AttachTo(eventBus)
		log.Println("NATS event feed attached successfully")
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Start the sweep worker
	sweepService := service.NewSweepService(uowFactory)
	stopSweep := service.StartSweepWorker(ctx, sweepService, cfg.SweepInterval)

	// Wait for context cancellation
	log.Printf("Side pot engine is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down...")
	stopSweep()

	if natsPublisher != nil {
		natsPublisher.Close()
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
