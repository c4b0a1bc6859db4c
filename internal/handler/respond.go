package handler

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
)

// CORS headers attached to every gateway response
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"

	AllowOrigin  = "*"
	AllowMethods = "GET, POST"
	AllowHeaders = "X-Requested-With"
)

// Insert outcomes
const (
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
)

// StatusPayload is the body of the insert route
type StatusPayload struct {
	Status string `json:"status"`
}

// EmptyList is the failure payload of every list route
func EmptyList() []any {
	return []any{}
}

// SetCORS sets the fixed cross-origin headers
func SetCORS(c *fiber.Ctx) {
	c.Set(HeaderAllowOrigin, AllowOrigin)
	c.Set(HeaderAllowMethods, AllowMethods)
	c.Set(HeaderAllowHeaders, AllowHeaders)
}

// WriteResponse writes payload as JSON with the CORS headers. A nil payload
// or nil slice is written as an empty array.
func WriteResponse(c *fiber.Ctx, status int, payload any) error {
	SetCORS(c)
	if isNilList(payload) {
		payload = EmptyList()
	}
	return c.Status(status).JSON(payload)
}

// WriteText writes a plain text body with the CORS headers
func WriteText(c *fiber.Ctx, status int, text string) error {
	SetCORS(c)
	return c.Status(status).SendString(text)
}

func isNilList(payload any) bool {
	if payload == nil {
		return true
	}
	v := reflect.ValueOf(payload)
	return v.Kind() == reflect.Slice && v.IsNil()
}
