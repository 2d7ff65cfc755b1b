package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/geojsonprofil/profil/internal/core/domain"
	"github.com/geojsonprofil/profil/internal/core/ports"
	"github.com/geojsonprofil/profil/internal/core/profile"
	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
	"github.com/geojsonprofil/profil/internal/pkg/logging"
	"github.com/geojsonprofil/profil/internal/pkg/metrics"
	"github.com/geojsonprofil/profil/internal/pkg/telemetry"
)

// ProfileOptions configures the conversion pipeline.
type ProfileOptions struct {
	Distance geospatial.DistanceFunc
	Layout   profile.Options
	Filename string
}

// DefaultProfileOptions returns WGS84 distances, the standard layout and
// the profil.dxf file name.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		Distance: geospatial.Geodesic,
		Layout:   profile.DefaultOptions(),
		Filename: "profil.dxf",
	}
}

// ConversionResult is a finished drawing file, held in memory.
type ConversionResult struct {
	Points      []domain.ProfilePoint
	Drawing     *domain.Drawing
	Data        []byte
	Filename    string
	ContentType string
	Event       domain.ConversionEvent
}

// ProfileSummary is the computed profile without a rendered drawing.
type ProfileSummary struct {
	Points    []domain.ProfilePoint `json:"points"`
	Bounds    domain.BoundingRange  `json:"bounds"`
	Gridlines int                   `json:"gridlines"`
	Length    float64               `json:"length_m"`
}

// ProfileService converts uploaded elevation-profile lines into drawings.
// It keeps no per-request state.
type ProfileService struct {
	decoder   ports.ProfileDecoder
	encoder   ports.DrawingEncoder
	publisher ports.EventPublisher
	opts      ProfileOptions
}

// NewProfileService creates a new ProfileService. publisher may be nil.
func NewProfileService(
	decoder ports.ProfileDecoder,
	encoder ports.DrawingEncoder,
	publisher ports.EventPublisher,
	opts ProfileOptions,
) *ProfileService {
	if opts.Distance == nil {
		opts.Distance = geospatial.Geodesic
	}
	if opts.Filename == "" {
		opts.Filename = "profil.dxf"
	}
	return &ProfileService{decoder: decoder, encoder: encoder, publisher: publisher, opts: opts}
}

// Filename is the download name given to converted drawings.
func (s *ProfileService) Filename() string { return s.opts.Filename }

// Convert runs the whole pipeline on a raw GeoJSON document. Any failure,
// including a panic, comes back as a *domain.ConversionError and no partial
// output is returned.
func (s *ProfileService) Convert(ctx context.Context, raw []byte) (res *ConversionResult, err error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanConvert)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = domain.NewConversionError(domain.StagePanic, fmt.Errorf("%v", r))
		}
		s.finish(ctx, span, "convert", start, err)
	}()

	points, err := s.extract(ctx, raw)
	if err != nil {
		return nil, err
	}

	var drawing *domain.Drawing
	err = stage(ctx, telemetry.SpanCompose, domain.StageCompose, func() error {
		var err error
		drawing, err = profile.Compose(points, s.opts.Layout)
		return err
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = stage(ctx, telemetry.SpanEncode, domain.StageEncode, func() error {
		return s.encoder.Encode(&buf, drawing)
	})
	if err != nil {
		return nil, err
	}

	event := domain.ConversionEvent{
		ID:        uuid.NewString(),
		Points:    len(points),
		Length:    drawing.Bounds.Length(),
		ZMin:      drawing.Bounds.ZMin,
		ZMax:      drawing.Bounds.ZMax,
		Gridlines: len(drawing.Grid),
		Bytes:     buf.Len(),
		Duration:  time.Since(start),
		CreatedAt: time.Now().UTC(),
	}
	span.SetAttributes(
		attribute.String("conversion.id", event.ID),
		attribute.Int("profile.points", event.Points),
		attribute.Int("drawing.gridlines", event.Gridlines),
		attribute.Int("drawing.bytes", event.Bytes),
	)
	metrics.ProfilePoints.Observe(float64(event.Points))
	metrics.Gridlines.Observe(float64(event.Gridlines))
	metrics.OutputSize.Observe(float64(event.Bytes))

	s.publish(ctx, &event)

	logging.FromContext(ctx).Info("profile converted",
		"conversion_id", event.ID,
		"points", event.Points,
		"length_m", event.Length,
		"z_min", event.ZMin,
		"z_max", event.ZMax,
		"bytes", event.Bytes,
	)

	return &ConversionResult{
		Points:      points,
		Drawing:     drawing,
		Data:        buf.Bytes(),
		Filename:    s.opts.Filename,
		ContentType: s.encoder.ContentType(),
		Event:       event,
	}, nil
}

// Profile decodes and flattens a raw GeoJSON document and reports its grid
// range without rendering a drawing.
func (s *ProfileService) Profile(ctx context.Context, raw []byte) (sum *ProfileSummary, err error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanProfile)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			sum = nil
			err = domain.NewConversionError(domain.StagePanic, fmt.Errorf("%v", r))
		}
		s.finish(ctx, span, "profile", start, err)
	}()

	points, err := s.extract(ctx, raw)
	if err != nil {
		return nil, err
	}

	bounds, err := profile.GridRange(points, s.opts.Layout)
	if err != nil {
		return nil, domain.NewConversionError(domain.StageCompose, err)
	}

	return &ProfileSummary{
		Points:    points,
		Bounds:    bounds,
		Gridlines: bounds.Levels(),
		Length:    bounds.Length(),
	}, nil
}

func (s *ProfileService) extract(ctx context.Context, raw []byte) ([]domain.ProfilePoint, error) {
	var input []domain.InputPoint
	err := stage(ctx, telemetry.SpanDecode, domain.StageDecode, func() error {
		var err error
		input, err = s.decoder.Decode(bytes.NewReader(raw))
		return err
	})
	if err != nil {
		return nil, err
	}

	var points []domain.ProfilePoint
	err = stage(ctx, telemetry.SpanExtract, domain.StageExtract, func() error {
		var err error
		points, err = profile.Extract(input, s.opts.Distance)
		return err
	})
	return points, err
}

func (s *ProfileService) publish(ctx context.Context, event *domain.ConversionEvent) {
	if s.publisher == nil {
		return
	}
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanPublish)
	defer span.End()

	if err := s.publisher.PublishConversion(ctx, event); err != nil {
		// Best-effort; the drawing is already built.
		span.RecordError(err)
		metrics.EventsPublished.WithLabelValues("error").Inc()
		logging.FromContext(ctx).Warn("publish conversion event", "conversion_id", event.ID, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}

func (s *ProfileService) finish(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	metrics.ConversionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.ConversionsTotal.WithLabelValues("success", "").Inc()
		return
	}

	stageName := domain.StagePanic
	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		stageName = convErr.Stage
	}
	metrics.ConversionsTotal.WithLabelValues("failure", stageName).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, stageName)
	logging.FromContext(ctx).Warn("profile conversion failed", "operation", op, "stage", stageName, "error", err)
}

// stage runs fn inside its own span and wraps any error as a failure of the
// named stage.
func stage(ctx context.Context, spanName, stageName string, fn func() error) error {
	_, span := telemetry.Tracer().Start(ctx, spanName)
	defer span.End()

	if err := fn(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.NewConversionError(stageName, err)
	}
	return nil
}
