// Package router owns the gateway route table and mounts it on a fiber app.
package router

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beyondgbrowse/snowgate/internal/handler"
)

// ParamDatasetID is the placeholder coerced to an unsigned 16-bit integer.
// Every other placeholder is passed to the handler as a string.
const ParamDatasetID = "datasetId"

// Route binds a method and path pattern to a handler
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler fiber.Handler
}

// Router holds the ordered route table. Registration order is preserved
// when the table is mounted.
type Router struct {
	routes []Route
	seen   map[string]struct{}
	logger *zap.Logger
}

// New creates an empty router
func New(logger *zap.Logger) *Router {
	return &Router{
		seen:   make(map[string]struct{}),
		logger: logger,
	}
}

// Handle registers a route. When (method, pattern) is already registered the
// first registration wins and the duplicate is dropped with a warning.
func (r *Router) Handle(method, pattern, name string, h fiber.Handler) bool {
	key := method + " " + pattern
	if _, ok := r.seen[key]; ok {
		r.logger.Warn("duplicate route dropped",
			zap.String("method", method),
			zap.String("pattern", pattern),
			zap.String("route", name),
		)
		return false
	}

	r.seen[key] = struct{}{}
	r.routes = append(r.routes, Route{Method: method, Pattern: pattern, Name: name, Handler: h})
	return true
}

// Get registers a GET route
func (r *Router) Get(pattern, name string, h fiber.Handler) bool {
	return r.Handle(fiber.MethodGet, pattern, name, h)
}

// Post registers a POST route
func (r *Router) Post(pattern, name string, h fiber.Handler) bool {
	return r.Handle(fiber.MethodPost, pattern, name, h)
}

// Routes returns a copy of the route table in registration order
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Mount adds every route to app. Routes with a :datasetId placeholder get
// the coercion step in front of their handler.
func (r *Router) Mount(app fiber.Router) {
	for _, route := range r.routes {
		handlers := []fiber.Handler{route.Handler}
		if hasDatasetID(route.Pattern) {
			handlers = append([]fiber.Handler{r.coerceDatasetID(route.Name)}, handlers...)
		}
		app.Add(route.Method, route.Pattern, handlers...).Name(route.Name)
	}
}

// coerceDatasetID parses :datasetId into the handler local. A value that is
// not an unsigned 16-bit integer is answered with 400 and an empty list
// before the handler runs.
func (r *Router) coerceDatasetID(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(ParamDatasetID)
		id, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			r.logger.Warn("route failed",
				zap.String("route", name),
				zap.String("kind", "INVALID_ARGUMENT"),
				zap.String("dataset_id", raw),
			)
			return handler.WriteResponse(c, fiber.StatusBadRequest, handler.EmptyList())
		}
		c.Locals(handler.LocalDatasetID, uint16(id))
		return c.Next()
	}
}

func hasDatasetID(pattern string) bool {
	return slices.Contains(strings.Split(pattern, "/"), ":"+ParamDatasetID)
}
