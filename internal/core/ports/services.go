package ports

import (
	"context"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// MapRenderer turns a map document into a self-contained HTML artifact.
type MapRenderer interface {
	Render(ctx context.Context, doc domain.MapDocument) ([]byte, error)
}

// ArtifactPublisher writes a rendered artifact to its final location.
type ArtifactPublisher interface {
	Publish(ctx context.Context, path string, data []byte) error
}
