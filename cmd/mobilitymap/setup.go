package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/samirrijal/mobilitymap/internal/adapters/csvsource"
	"github.com/samirrijal/mobilitymap/internal/adapters/filestore"
	"github.com/samirrijal/mobilitymap/internal/adapters/geojson"
	"github.com/samirrijal/mobilitymap/internal/adapters/mappingfile"
	"github.com/samirrijal/mobilitymap/internal/adapters/render"
	"github.com/samirrijal/mobilitymap/internal/core/domain"
	"github.com/samirrijal/mobilitymap/internal/core/usecases"
	"github.com/samirrijal/mobilitymap/internal/pkg/config"
	"github.com/samirrijal/mobilitymap/internal/pkg/logging"
	"github.com/samirrijal/mobilitymap/internal/pkg/telemetry"
)

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("mobilitymap", configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

// startTelemetry installs the tracer provider when enabled. The returned
// function is always safe to call.
func startTelemetry(ctx context.Context, cfg *config.Config) func() {
	if !cfg.Telemetry.Enabled {
		return func() {}
	}
	shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	if err != nil {
		slog.Warn("telemetry init failed", "error", err)
		return func() {}
	}
	return shutdown
}

// resolveMapping returns the active name mapping from the built-in sets and
// the optional mapping file.
func resolveMapping(fsys afero.Fs, cfg config.ReconcileConfig) (domain.NameMapping, error) {
	var fromFile map[string]map[string]string
	if cfg.MappingFile != "" {
		sets, err := mappingfile.Load(fsys, cfg.MappingFile)
		if err != nil {
			return domain.NameMapping{}, err
		}
		fromFile = sets
	}
	return mappingfile.Select(config.BuiltinMappingSets(), fromFile, cfg.MappingSet)
}

func mapSettings(cfg config.MapConfig) domain.MapSettings {
	return domain.MapSettings{
		Center:      domain.GeoPoint{Lat: cfg.CenterLat, Lon: cfg.CenterLon},
		Zoom:        cfg.Zoom,
		Tiles:       cfg.Tiles,
		FillColor:   cfg.FillColor,
		FillOpacity: cfg.FillOpacity,
		LineOpacity: cfg.LineOpacity,
		Bins:        cfg.Bins,
		LegendName:  cfg.LegendName,
		Title:       cfg.Title,
	}
}

// buildPipeline wires the rendering pass against fsys.
func buildPipeline(fsys afero.Fs, cfg *config.Config) (*usecases.PipelineService, *filestore.Publisher, error) {
	mapping, err := resolveMapping(fsys, cfg.Reconcile)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("name mapping selected", "set", mapping.Name(), "entries", mapping.Len())

	publisher := filestore.New(fsys)
	pipeline := usecases.NewPipelineService(
		csvsource.New(fsys, cfg.Data.RecordsPath, cfg.Data.DelimiterRune()),
		geojson.New(fsys, cfg.Data.BoundariesPath),
		render.New(),
		publisher,
		usecases.PipelineConfig{
			Mapping:      mapping,
			Settings:     mapSettings(cfg.Map),
			ArtifactPath: cfg.Output.ArtifactPath(),
		},
	)
	return pipeline, publisher, nil
}
