package ports

import (
	"context"
	"io"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// ProfileDecoder reads the coordinate triples of an uploaded profile line.
type ProfileDecoder interface {
	Decode(r io.Reader) ([]domain.InputPoint, error)
}

// DrawingEncoder serializes a drawing into a file format.
type DrawingEncoder interface {
	Encode(w io.Writer, d *domain.Drawing) error
	ContentType() string
}

// EventPublisher publishes conversion events to a message broker.
type EventPublisher interface {
	PublishConversion(ctx context.Context, event *domain.ConversionEvent) error
}
