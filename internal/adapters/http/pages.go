package http

import (
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"
)

const indexHTML = `<h2>Heatmap Available <a href="/heatmap" target="_blank">Here</a></h2>`

const heatmapHTML = `
<html>
  <head>
    <title>Choropleth Heatmap</title>
  </head>
  <body>
    <iframe src="%s" width="100%%" height="800"></iframe>
  </body>
</html>
`

// IndexHandler links to the heatmap page.
func IndexHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(indexHTML)
	}
}

// HeatmapHandler wraps the published artifact in an inline frame.
func HeatmapHandler(deps *Dependencies) fiber.Handler {
	body := fmt.Sprintf(heatmapHTML, html.EscapeString(deps.artifactURL()))
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(body)
	}
}
