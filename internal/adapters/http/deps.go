package http

import (
	"time"

	"github.com/geojsonprofil/profil/internal/core/usecases"
)

// EventsStatus reports the broker connection for readiness checks.
type EventsStatus interface {
	IsConnected() bool
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Profiles       *usecases.ProfileService
	Events         EventsStatus  // nil when events are disabled
	RequestTimeout time.Duration // per conversion request, 0 means 15s
	RateLimit      int           // requests per minute per IP, 0 disables
	Version        string
}
