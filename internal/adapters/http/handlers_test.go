package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/mobilitymap/internal/adapters/http"
	"github.com/samirrijal/mobilitymap/internal/core/domain"
	"github.com/samirrijal/mobilitymap/internal/core/usecases"
)

// ---- Mock artifact checker ----

type mockArtifacts struct {
	existsFn func(path string) bool
}

func (m *mockArtifacts) Exists(path string) bool {
	if m.existsFn != nil {
		return m.existsFn(path)
	}
	return true
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})
	handler.SetupRoutes(app, deps)
	return app
}

func sampleResult() *domain.RenderResult {
	return &domain.RenderResult{
		Records: []domain.MobilityRecord{
			{Country: "United States of America", RawCountry: "USA", StudentCount: 120, Location: domain.GeoPoint{Lat: 38.9, Lon: -77.0}},
			{Country: "Peru", RawCountry: "Peru", StudentCount: 10, Location: domain.GeoPoint{Lat: -12.05, Lon: -77.04}},
			{Country: "Atlantis", RawCountry: "Atlantis", StudentCount: 5, Location: domain.GeoPoint{Lat: 0, Lon: 0}},
		},
		Unmatched:    []string{"Atlantis"},
		MappingSet:   "short_forms",
		ArtifactPath: "static/choropleth_heatmap.html",
		ArtifactSize: 2048,
		Boundaries:   177,
		RenderedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Atlas:        usecases.NewAtlasService(sampleResult()),
		Artifacts:    &mockArtifacts{},
		StaticDir:    "static",
		ArtifactFile: "choropleth_heatmap.html",
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

// ---- Page tests ----

func TestIndex_LinksToHeatmap(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}

	body := string(readBody(t, resp.Body))
	want := `<h2>Heatmap Available <a href="/heatmap" target="_blank">Here</a></h2>`
	if body != want {
		t.Errorf("unexpected body:\n got %s\nwant %s", body, want)
	}
}

func TestHeatmap_FramesArtifact(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/heatmap", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := string(readBody(t, resp.Body))
	if !strings.Contains(body, "<title>Choropleth Heatmap</title>") {
		t.Error("expected page title")
	}
	if !strings.Contains(body, `<iframe src="/static/choropleth_heatmap.html" width="100%" height="800">`) {
		t.Errorf("expected iframe to the artifact, got %s", body)
	}
	if xfo := resp.Header.Get("X-Frame-Options"); xfo != "SAMEORIGIN" {
		t.Errorf("expected X-Frame-Options SAMEORIGIN, got %q", xfo)
	}
}

func TestStatic_ServesArtifact(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "choropleth_heatmap.html"), []byte("<html>map</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.StaticDir = dir }))

	req := httptest.NewRequest("GET", "/static/choropleth_heatmap.html", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := string(readBody(t, resp.Body)); body != "<html>map</html>" {
		t.Errorf("unexpected body %q", body)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("expected no-cache, got %q", cc)
	}
}

func TestStatic_MissingFile(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.StaticDir = t.TempDir() }))

	req := httptest.NewRequest("GET", "/static/nope.html", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- API tests ----

func TestListRecords_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/records", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.MobilityRecord `json:"data"`
		Pagination struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Pagination.Total)
	}
	if result.Pagination.Limit != 100 {
		t.Errorf("expected default limit 100, got %d", result.Pagination.Limit)
	}
	if len(result.Data) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Data))
	}
	if result.Data[0].RawCountry != "USA" {
		t.Errorf("expected raw country USA, got %s", result.Data[0].RawCountry)
	}
}

func TestListRecords_Pagination(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/records?offset=1&limit=1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.MobilityRecord `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 1 || result.Data[0].Country != "Peru" {
		t.Errorf("expected [Peru], got %+v", result.Data)
	}

	link := resp.Header.Get("Link")
	for _, rel := range []string{`rel="first"`, `rel="prev"`, `rel="next"`, `rel="last"`} {
		if !strings.Contains(link, rel) {
			t.Errorf("Link header missing %s: %s", rel, link)
		}
	}
}

func TestListRecords_BadPagination(t *testing.T) {
	app := setupApp(makeDeps())

	for _, q := range []string{"limit=0", "limit=501", "offset=-1"} {
		req := httptest.NewRequest("GET", "/v1/records?"+q, nil)
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != 400 {
			t.Errorf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestListCountries(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/countries", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var countries []usecases.CountrySummary
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		t.Fatal(err)
	}
	if len(countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(countries))
	}
	if countries[0].Country != "United States of America" || countries[0].Students != 120 {
		t.Errorf("unexpected first country: %+v", countries[0])
	}
}

func TestUnmatched(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/diagnostics/unmatched", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		MappingSet string   `json:"mapping_set"`
		Count      int      `json:"count"`
		Unmatched  []string `json:"unmatched"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.MappingSet != "short_forms" {
		t.Errorf("expected short_forms, got %s", result.MappingSet)
	}
	if result.Count != 1 || result.Unmatched[0] != "Atlantis" {
		t.Errorf("expected [Atlantis], got %v", result.Unmatched)
	}
}

func TestUnmatched_EmptyIsArray(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) {
		d.Atlas = usecases.NewAtlasService(&domain.RenderResult{MappingSet: "default"})
	}))

	req := httptest.NewRequest("GET", "/v1/diagnostics/unmatched", nil)
	resp, _ := app.Test(req, -1)

	body := string(readBody(t, resp.Body))
	if !strings.Contains(body, `"unmatched":[]`) {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestSummary(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/summary", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var s handler.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if s.Records != 3 || s.Countries != 3 || s.Students != 135 || s.Unmatched != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.ArtifactURL != "/static/choropleth_heatmap.html" {
		t.Errorf("unexpected artifact url %s", s.ArtifactURL)
	}
	if s.Bounds == nil || s.Bounds.MaxLat != 38.9 || s.Bounds.MinLat != -12.05 {
		t.Errorf("unexpected bounds %+v", s.Bounds)
	}
}

func TestGraphQL(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"query":"{ records(limit: 1) { country popup } unmatched summary { students } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Records []struct {
				Country string `json:"country"`
				Popup   string `json:"popup"`
			} `json:"records"`
			Unmatched []string `json:"unmatched"`
			Summary   struct {
				Students int `json:"students"`
			} `json:"summary"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Data.Records) != 1 || result.Data.Records[0].Popup != "United States of America: 120 students" {
		t.Errorf("unexpected records: %+v", result.Data.Records)
	}
	if len(result.Data.Unmatched) != 1 {
		t.Errorf("expected one unmatched name, got %v", result.Data.Unmatched)
	}
	if result.Data.Summary.Students != 135 {
		t.Errorf("expected 135 students, got %d", result.Data.Summary.Students)
	}
}

func TestGraphQL_EmptyQuery(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Health tests ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]any
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", result["status"])
	}
}

func TestReady_ArtifactPresent(t *testing.T) {
	var checked string
	app := setupApp(makeDeps(func(d *handler.Dependencies) {
		d.Artifacts = &mockArtifacts{existsFn: func(path string) bool {
			checked = path
			return true
		}}
	}))

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if checked != filepath.Join("static", "choropleth_heatmap.html") {
		t.Errorf("unexpected artifact path %q", checked)
	}
}

func TestReady_ArtifactMissing(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) {
		d.Artifacts = &mockArtifacts{existsFn: func(string) bool { return false }}
	}))

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

func TestReady_NotRendered(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) {
		d.Atlas = usecases.NewAtlasService(nil)
	}))

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Middleware tests ----

func TestAPI_CacheControlHeader(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/countries", nil)
	resp, _ := app.Test(req, -1)
	if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("expected public, max-age=300, got %q", cc)
	}
}

func TestETag_NotModified(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/summary", nil), -1)
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest("GET", "/v1/summary", nil)
	req.Header.Set("If-None-Match", etag)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 304 {
		t.Errorf("expected 304, got %d", resp.StatusCode)
	}
}

func TestUnknownRoute_JSON404(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/nope", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("expected status 404 in body, got %d", apiErr.Status)
	}
}
