package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beyondgbrowse/snowgate/internal/domain"
	apperrors "github.com/beyondgbrowse/snowgate/internal/pkg/errors"
	"github.com/beyondgbrowse/snowgate/internal/service"
	"github.com/beyondgbrowse/snowgate/internal/validator"
)

// WelcomeMessage is the body of GET /
const WelcomeMessage = "Welcome to BeyondGBrowse web interface!"

// LocalDatasetID is the fiber local holding the coerced :datasetId placeholder
const LocalDatasetID = "datasetID"

// Route names used in failure logs
const (
	RouteWelcome          = "welcome"
	RouteRegionByProtein  = "ref"
	RouteLocate           = "locate"
	RouteAnnotationQuery  = "annotation_query"
	RouteAnnotationInsert = "annotation_insert"
	RouteAutocomplete     = "locate_autocomplete"
	RouteDatasets         = "datasets"
	RouteAnnotationSearch = "annotation_search"
)

// GatewayHandler serves the annotation gateway routes. Route failures are
// logged and answered with 200 and the route's failure payload.
type GatewayHandler struct {
	svc    *service.GatewayService
	logger *zap.Logger
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(svc *service.GatewayService, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		svc:    svc,
		logger: logger,
	}
}

// DatasetID returns the coerced :datasetId of the current route
func DatasetID(c *fiber.Ctx) uint16 {
	id, _ := c.Locals(LocalDatasetID).(uint16)
	return id
}

// Welcome handles GET /
func (h *GatewayHandler) Welcome(c *fiber.Ctx) error {
	return WriteText(c, fiber.StatusOK, WelcomeMessage)
}

// RegionByProtein handles GET /:datasetId/ref/:proteinName/:position
func (h *GatewayHandler) RegionByProtein(c *fiber.Ctx) error {
	datasetID := DatasetID(c)
	proteinName := c.Params("proteinName")
	position := c.Params("position")

	records, err := h.svc.RegionByProtein(c.UserContext(), datasetID, proteinName, position)
	if err != nil {
		h.fail(RouteRegionByProtein, err,
			zap.Uint16("dataset_id", datasetID),
			zap.String("protein_name", proteinName),
			zap.String("position", position),
		)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, records)
}

// Locate handles GET /:datasetId/locate/:proteinName
func (h *GatewayHandler) Locate(c *fiber.Ctx) error {
	datasetID := DatasetID(c)
	proteinName := c.Params("proteinName")

	records, err := h.svc.Locate(c.UserContext(), datasetID, proteinName)
	if err != nil {
		h.fail(RouteLocate, err,
			zap.Uint16("dataset_id", datasetID),
			zap.String("protein_name", proteinName),
		)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, records)
}

// AnnotationQuery handles GET /:datasetId/annotation/query/:name/:position
func (h *GatewayHandler) AnnotationQuery(c *fiber.Ctx) error {
	datasetID := DatasetID(c)
	name := c.Params("name")
	position := c.Params("position")

	records, err := h.svc.AnnotationsByRegion(c.UserContext(), datasetID, name, position)
	if err != nil {
		h.fail(RouteAnnotationQuery, err,
			zap.Uint16("dataset_id", datasetID),
			zap.String("name", name),
			zap.String("position", position),
		)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, records)
}

// InsertAnnotation handles POST /annotation/insert. Coordinates and metadata
// come from the query string, the contents from the raw body.
func (h *GatewayHandler) InsertAnnotation(c *fiber.Ctx) error {
	annotation := &domain.Annotation{
		DatasetID:      validator.LenientUint16(QueryValue(c, "datasetId")),
		ReferenceName:  QueryValue(c, "refName"),
		Position:       validator.LenientInt32(QueryValue(c, "position")),
		Time:           QueryValue(c, "time"),
		Contents:       string(c.Body()),
		AuthorUsername: QueryValue(c, "author"),
		RemoteAddress:  c.IP(),
	}

	if err := h.svc.InsertAnnotation(c.UserContext(), annotation); err != nil {
		h.fail(RouteAnnotationInsert, err,
			zap.Uint16("dataset_id", annotation.DatasetID),
			zap.String("ref_name", annotation.ReferenceName),
			zap.Int32("position", annotation.Position),
			zap.String("time", annotation.Time),
			zap.String("author", annotation.AuthorUsername),
			zap.String("remote_address", annotation.RemoteAddress),
		)
		return WriteResponse(c, fiber.StatusOK, StatusPayload{Status: StatusFail})
	}
	return WriteResponse(c, fiber.StatusOK, StatusPayload{Status: StatusSuccess})
}

// Autocomplete handles GET /:datasetId/locate_autocomplete/:proteinName
func (h *GatewayHandler) Autocomplete(c *fiber.Ctx) error {
	datasetID := DatasetID(c)
	partial := c.Params("proteinName")

	ids, err := h.svc.Autocomplete(c.UserContext(), datasetID, partial)
	if err != nil {
		h.fail(RouteAutocomplete, err,
			zap.Uint16("dataset_id", datasetID),
			zap.String("protein_name", partial),
		)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, ids)
}

// Datasets handles GET /datasets
func (h *GatewayHandler) Datasets(c *fiber.Ctx) error {
	records, err := h.svc.ListDatasets(c.UserContext())
	if err != nil {
		h.fail(RouteDatasets, err)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, records)
}

// SearchAnnotations handles POST /annotation/search. The body is the
// contents filter. A missing id reads as 0, the id every insert stores, so
// a search with only datasetId lists the dataset; id=-1 drops the id filter.
func (h *GatewayHandler) SearchAnnotations(c *fiber.Ctx) error {
	filter := &domain.SearchFilter{
		DatasetID:      validator.LenientUint16(QueryValue(c, "datasetId")),
		ID:             validator.LenientInt32(QueryValue(c, "id")),
		Contents:       string(c.Body()),
		AuthorUsername: QueryValue(c, "author"),
		RemoteAddress:  QueryValue(c, "ipaddress"),
	}

	records, err := h.svc.SearchAnnotations(c.UserContext(), filter)
	if err != nil {
		h.fail(RouteAnnotationSearch, err,
			zap.Uint16("dataset_id", filter.DatasetID),
			zap.Int32("id", filter.ID),
			zap.String("author", filter.AuthorUsername),
			zap.String("ipaddress", filter.RemoteAddress),
		)
		return WriteResponse(c, fiber.StatusOK, EmptyList())
	}
	return WriteResponse(c, fiber.StatusOK, records)
}

// fail logs one warning line for a failed route
func (h *GatewayHandler) fail(route string, err error, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("route", route),
		zap.String("kind", apperrors.KindOf(err).String()),
		zap.Error(err),
	}, fields...)
	h.logger.Warn("route failed", fields...)
}
