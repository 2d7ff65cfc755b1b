package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/geojsonprofil/profil/internal/adapters/dxf"
	"github.com/geojsonprofil/profil/internal/adapters/geojson"
	"github.com/geojsonprofil/profil/internal/adapters/http"
	natsadapter "github.com/geojsonprofil/profil/internal/adapters/nats"
	"github.com/geojsonprofil/profil/internal/core/ports"
	"github.com/geojsonprofil/profil/internal/core/profile"
	"github.com/geojsonprofil/profil/internal/core/usecases"
	"github.com/geojsonprofil/profil/internal/pkg/config"
	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
	"github.com/geojsonprofil/profil/internal/pkg/logging"
	"github.com/geojsonprofil/profil/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load("profil-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// NATS (optional)
	var (
		publisher ports.EventPublisher
		events    http.EventsStatus
	)
	if cfg.NATS.Enabled {
		nc, err := natsadapter.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer nc.Close()
			publisher = nc
			events = nc
		}
	}

	distance, err := geospatial.ParseModel(cfg.Profile.DistanceModel)
	if err != nil {
		log.Fatalf("distance model: %v", err)
	}

	// Use cases
	profileSvc := usecases.NewProfileService(geojson.Decoder{}, dxf.Format{}, publisher, usecases.ProfileOptions{
		Distance: distance,
		Layout: profile.Options{
			LabelOffset:  cfg.Profile.LabelOffset,
			TextHeight:   cfg.Profile.TextHeight,
			MaxGridlines: cfg.Profile.MaxGridlines,
		},
		Filename: cfg.Profile.Filename,
	})

	deps := &http.Dependencies{
		Profiles:       profileSvc,
		Events:         events,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		RateLimit:      cfg.Server.RateLimit,
		Version:        version,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit(),
		AppName:      "Profil API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "distance_model", cfg.Profile.DistanceModel)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
