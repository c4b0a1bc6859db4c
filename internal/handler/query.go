package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// QueryValue returns the first value of key in the raw query string.
// Values are percent-decoded and a literal '+' is kept, so timestamps with
// a zone offset such as "+08:00" arrive as sent.
func QueryValue(c *fiber.Ctx, key string) string {
	query := string(c.Request().URI().QueryString())
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		k, v, _ := strings.Cut(pair, "=")
		if unescape(k) == key {
			return unescape(v)
		}
	}
	return ""
}

func unescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
