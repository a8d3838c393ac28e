package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
	"github.com/samirrijal/mobilitymap/internal/core/ports"
	"github.com/samirrijal/mobilitymap/internal/pkg/metrics"
)

var tracer = otel.Tracer("github.com/samirrijal/mobilitymap/internal/core/usecases")

// PipelineService runs the load → reconcile → render → publish pass.
type PipelineService struct {
	records      ports.RecordSource
	boundaries   ports.BoundarySource
	renderer     ports.MapRenderer
	publisher    ports.ArtifactPublisher
	mapping      domain.NameMapping
	settings     domain.MapSettings
	artifactPath string
	now          func() time.Time
}

// PipelineConfig bundles the static inputs of a PipelineService.
type PipelineConfig struct {
	Mapping      domain.NameMapping
	Settings     domain.MapSettings
	ArtifactPath string
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(
	records ports.RecordSource,
	boundaries ports.BoundarySource,
	renderer ports.MapRenderer,
	publisher ports.ArtifactPublisher,
	cfg PipelineConfig,
) *PipelineService {
	return &PipelineService{
		records:      records,
		boundaries:   boundaries,
		renderer:     renderer,
		publisher:    publisher,
		mapping:      cfg.Mapping,
		settings:     cfg.Settings,
		artifactPath: cfg.ArtifactPath,
		now:          time.Now,
	}
}

// Check loads and reconciles without rendering, returning the reconciled
// records and the unmatched names.
func (s *PipelineService) Check(ctx context.Context) ([]domain.MobilityRecord, []domain.UnmatchedNameWarning, error) {
	records, boundaries, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	reconciled, warnings := s.reconcile(ctx, records, boundaries)
	return reconciled, warnings, nil
}

// Run executes one full rendering pass. Any error is fatal to the pass;
// unmatched names are only logged and reported in the result.
func (s *PipelineService) Run(ctx context.Context) (*domain.RenderResult, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	result, err := s.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RenderPasses.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RenderPasses.WithLabelValues("ok").Inc()
	slog.InfoContext(ctx, "map artifact published",
		"path", result.ArtifactPath,
		"bytes", result.ArtifactSize,
		"records", len(result.Records),
		"unmatched", len(result.Unmatched),
		"mapping_set", result.MappingSet,
		"duration", time.Since(start).String(),
	)
	return result, nil
}

func (s *PipelineService) run(ctx context.Context) (*domain.RenderResult, error) {
	records, boundaries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	reconciled, warnings := s.reconcile(ctx, records, boundaries)

	var html []byte
	err = stage(ctx, "render", func(ctx context.Context) error {
		var err error
		html, err = s.renderer.Render(ctx, domain.MapDocument{
			Records:    reconciled,
			Boundaries: boundaries,
			Settings:   s.settings,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}

	err = stage(ctx, "publish", func(ctx context.Context) error {
		return s.publisher.Publish(ctx, s.artifactPath, html)
	})
	if err != nil {
		return nil, fmt.Errorf("publish artifact: %w", err)
	}
	metrics.ArtifactBytes.Set(float64(len(html)))

	unmatched := make([]string, len(warnings))
	for i, w := range warnings {
		unmatched[i] = w.Name
	}

	return &domain.RenderResult{
		Records:      reconciled,
		Unmatched:    unmatched,
		MappingSet:   s.mapping.Name(),
		ArtifactPath: s.artifactPath,
		ArtifactSize: len(html),
		Boundaries:   boundaries.Len(),
		RenderedAt:   s.now().UTC(),
	}, nil
}

func (s *PipelineService) load(ctx context.Context) ([]domain.MobilityRecord, *domain.BoundarySet, error) {
	var records []domain.MobilityRecord
	err := stage(ctx, "load_records", func(ctx context.Context) error {
		var err error
		records, err = s.records.Load(ctx)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load records: %w", err)
	}
	metrics.RecordsLoaded.Set(float64(len(records)))

	var boundaries *domain.BoundarySet
	err = stage(ctx, "load_boundaries", func(ctx context.Context) error {
		var err error
		boundaries, err = s.boundaries.Load(ctx)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load boundaries: %w", err)
	}
	return records, boundaries, nil
}

func (s *PipelineService) reconcile(ctx context.Context, records []domain.MobilityRecord, boundaries *domain.BoundarySet) ([]domain.MobilityRecord, []domain.UnmatchedNameWarning) {
	var (
		reconciled []domain.MobilityRecord
		warnings   []domain.UnmatchedNameWarning
	)
	_ = stage(ctx, "reconcile", func(ctx context.Context) error {
		reconciled = ReconcileRecords(records, s.mapping)
		warnings = UnmatchedWarnings(reconciled, boundaries)
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.String("mapping_set", s.mapping.Name()),
			attribute.Int("unmatched", len(warnings)),
		)
		return nil
	})

	for _, w := range warnings {
		slog.WarnContext(ctx, "unmatched country name",
			"country", w.Name,
			"raw_names", w.RawNames,
			"warning", w.Error(),
		)
	}
	metrics.UnmatchedNames.Set(float64(len(warnings)))
	return reconciled, warnings
}

// stage runs fn inside a span and records its duration.
func stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.PipelineStageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
