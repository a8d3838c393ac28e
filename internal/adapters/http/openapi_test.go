package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"

	handler "github.com/samirrijal/mobilitymap/internal/adapters/http"
)

// findOpenAPIDoc walks up from the test directory to api/openapi.yaml.
func findOpenAPIDoc(t *testing.T) string {
	t.Helper()
	dir, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "api", "openapi.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatalf("could not find api/openapi.yaml")
	return ""
}

func loadOpenAPIDoc(t *testing.T) *openapi3.T {
	t.Helper()
	data, err := os.ReadFile(findOpenAPIDoc(t))
	if err != nil {
		t.Fatalf("read openapi.yaml: %v", err)
	}
	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("parse openapi.yaml: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("openapi.yaml is invalid: %v", err)
	}
	return doc
}

// documentedPath maps a fiber route path onto its OpenAPI path template.
func documentedPath(route string) string {
	if strings.HasPrefix(route, "/static") {
		return "/static/{file}"
	}
	return route
}

// TestOpenAPI_DocumentsEveryRoute fails when a route registered by
// SetupRoutes has no matching operation in api/openapi.yaml.
func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	doc := loadOpenAPIDoc(t)
	app := setupApp(makeDeps())

	checked := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method != fiber.MethodGet && r.Method != fiber.MethodPost {
			continue
		}
		if strings.HasPrefix(r.Path, "/docs") {
			continue
		}

		path := documentedPath(r.Path)
		item := doc.Paths.Find(path)
		if item == nil {
			t.Errorf("route %s %s is not documented", r.Method, path)
			continue
		}
		if item.GetOperation(r.Method) == nil {
			t.Errorf("route %s %s has no documented operation", r.Method, path)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no routes checked")
	}
}

func TestOpenAPI_Schemas(t *testing.T) {
	doc := loadOpenAPIDoc(t)

	for _, name := range []string{"GeoPoint", "MobilityRecord", "CountrySummary", "Summary", "Readiness", "APIError", "Pagination"} {
		if doc.Components.Schemas[name] == nil {
			t.Errorf("expected schema %s", name)
		}
	}

	if doc.Info.Title != "mobilitymap API" {
		t.Errorf("unexpected title %q", doc.Info.Title)
	}
	if len(doc.Servers) == 0 {
		t.Error("expected at least one server")
	}
}

func TestDocs_ServesLoadedDocument(t *testing.T) {
	docs, err := handler.LoadAPIDocs(context.Background(), afero.NewOsFs(), findOpenAPIDoc(t))
	if err != nil {
		t.Fatalf("load docs: %v", err)
	}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Docs = docs }))

	resp, _ := app.Test(httptest.NewRequest("GET", "/docs/openapi.json", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.OpenAPI != "3.0.3" {
		t.Errorf("expected openapi 3.0.3, got %q", body.OpenAPI)
	}
	if _, ok := body.Paths["/v1/diagnostics/unmatched"]; !ok {
		t.Error("expected unmatched diagnostics path in JSON document")
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/docs/openapi.yaml", nil), -1)
	if ct := resp.Header.Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("expected application/yaml, got %q", ct)
	}
}

func TestDocs_NotLoaded(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/docs/openapi.json", nil), -1)
	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestLoadAPIDocs_Invalid(t *testing.T) {
	fsys := afero.NewMemMapFs()
	afero.WriteFile(fsys, "bad.yaml", []byte("openapi: 3.0.3\ninfo: {}\n"), 0o644)

	if _, err := handler.LoadAPIDocs(context.Background(), fsys, "bad.yaml"); err == nil {
		t.Error("expected validation error")
	}
	if _, err := handler.LoadAPIDocs(context.Background(), fsys, "missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
