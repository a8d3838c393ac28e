package http

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>mobilitymap API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({ url: "/docs/openapi.json", dom_id: "#swagger-ui", deepLinking: true });
  </script>
</body>
</html>`

// APIDocs is a loaded and validated OpenAPI document.
type APIDocs struct {
	raw  []byte
	json []byte
}

// LoadAPIDocs reads the OpenAPI document at path and validates it.
func LoadAPIDocs(ctx context.Context, fsys afero.Fs, path string) (*APIDocs, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	doc, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	js, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return &APIDocs{raw: raw, json: js}, nil
}

// SetupDocs registers Swagger UI at /docs and the OpenAPI document at
// /docs/openapi.yaml and /docs/openapi.json. Without a document the
// routes answer 404.
func SetupDocs(app *fiber.App, docs *APIDocs) {
	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(swaggerUIHTML)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if docs == nil {
			return errNotFound(c, "API docs not loaded")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(docs.raw)
	})

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		if docs == nil {
			return errNotFound(c, "API docs not loaded")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(docs.json)
	})
}
