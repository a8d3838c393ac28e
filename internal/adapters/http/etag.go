package http

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Paths whose bodies are streamed or already carry validators.
var etagSkipPrefixes = []string{"/static/", "/metrics"}

// ETagMiddleware tags successful GET and HEAD responses with a weak ETag
// over the body and answers 304 when If-None-Match matches.
func ETagMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead:
		default:
			return nil
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		for _, p := range etagSkipPrefixes {
			if strings.HasPrefix(c.Path(), p) {
				return nil
			}
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		h := fnv.New64a()
		h.Write(body)
		etag := `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
		c.Set(fiber.HeaderETag, etag)

		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().ResetBody()
		}
		return nil
	}
}
