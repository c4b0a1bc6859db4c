package router

import (
	"go.uber.org/zap"

	"github.com/beyondgbrowse/snowgate/internal/handler"
)

// NewGateway builds the gateway route table. health may be nil.
func NewGateway(gw *handler.GatewayHandler, health *handler.HealthHandler, logger *zap.Logger) *Router {
	r := New(logger)

	r.Get("/", handler.RouteWelcome, gw.Welcome)
	r.Get("/:datasetId/ref/:proteinName/:position", handler.RouteRegionByProtein, gw.RegionByProtein)
	r.Get("/:datasetId/locate/:proteinName", handler.RouteLocate, gw.Locate)
	r.Get("/:datasetId/annotation/query/:name/:position", handler.RouteAnnotationQuery, gw.AnnotationQuery)
	r.Post("/annotation/insert", handler.RouteAnnotationInsert, gw.InsertAnnotation)
	r.Get("/:datasetId/locate_autocomplete/:proteinName", handler.RouteAutocomplete, gw.Autocomplete)
	r.Get("/datasets", handler.RouteDatasets, gw.Datasets)
	r.Post("/annotation/search", handler.RouteAnnotationSearch, gw.SearchAnnotations)

	if health != nil {
		r.Get("/health", "health", health.Health)
	}

	return r
}
