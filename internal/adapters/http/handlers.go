package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
	"github.com/samirrijal/mobilitymap/internal/pkg/geospatial"
)

// ListRecordsHandler returns the reconciled mobility records.
func ListRecordsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset, limit, err := parsePagination(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		records, total := deps.Atlas.Records(offset, limit)

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: records, Pagination: pg})
	}
}

// ListCountriesHandler returns per-country student totals.
func ListCountriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Atlas.Countries())
	}
}

// UnmatchedHandler returns reconciled names with no boundary feature.
func UnmatchedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unmatched := deps.Atlas.Unmatched()
		return c.JSON(fiber.Map{
			"mapping_set": deps.Atlas.Result().MappingSet,
			"count":       len(unmatched),
			"unmatched":   unmatched,
		})
	}
}

// Summary describes the published render result.
type Summary struct {
	Records      int            `json:"records"`
	Countries    int            `json:"countries"`
	Students     int            `json:"students"`
	Unmatched    int            `json:"unmatched"`
	Boundaries   int            `json:"boundaries"`
	MappingSet   string         `json:"mapping_set"`
	ArtifactURL  string         `json:"artifact_url"`
	ArtifactSize int            `json:"artifact_size"`
	Bounds       *domain.Bounds `json:"bounds,omitempty"`
	RenderedAt   time.Time      `json:"rendered_at"`
}

func buildSummary(deps *Dependencies) Summary {
	res := deps.Atlas.Result()

	points := make([]domain.GeoPoint, len(res.Records))
	students := 0
	for i, r := range res.Records {
		points[i] = r.Location
		students += r.StudentCount
	}

	s := Summary{
		Records:      len(res.Records),
		Countries:    len(deps.Atlas.Countries()),
		Students:     students,
		Unmatched:    len(res.Unmatched),
		Boundaries:   res.Boundaries,
		MappingSet:   res.MappingSet,
		ArtifactURL:  deps.artifactURL(),
		ArtifactSize: res.ArtifactSize,
		RenderedAt:   res.RenderedAt,
	}
	if b, ok := geospatial.BoundsOf(points); ok {
		s.Bounds = &b
	}
	return s
}

// SummaryHandler returns counts describing the published map.
func SummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(buildSummary(deps))
	}
}
