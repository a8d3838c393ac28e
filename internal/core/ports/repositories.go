package ports

import (
	"context"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// RecordSource loads the student-mobility table.
type RecordSource interface {
	Load(ctx context.Context) ([]domain.MobilityRecord, error)
}

// BoundarySource loads the boundary dataset used as the choropleth join target.
type BoundarySource interface {
	Load(ctx context.Context) (*domain.BoundarySet, error)
}
