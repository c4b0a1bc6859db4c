package service

import (
	"context"
	"errors"

	"github.com/beyondgbrowse/snowgate/internal/domain"
	apperrors "github.com/beyondgbrowse/snowgate/internal/pkg/errors"
	"github.com/beyondgbrowse/snowgate/internal/validator"
)

// errNotInserted is reported when the store accepted an insert but wrote no row
var errNotInserted = errors.New("annotation was not inserted")

// QueryStore defines the lookups and inserts served by the annotation database
type QueryStore interface {
	FindRegionByProteinAndPosition(ctx context.Context, q *domain.RegionQuery) ([]domain.Record, error)
	FindRegionsByProteinID(ctx context.Context, q *domain.ProteinQuery) ([]domain.Record, error)
	FindAnnotationsByRegion(ctx context.Context, q *domain.RegionQuery) ([]domain.Record, error)
	InsertAnnotation(ctx context.Context, a *domain.Annotation) (bool, error)
	ListDatasets(ctx context.Context) ([]domain.Record, error)
	FindProteinIDsForAutocomplete(ctx context.Context, q *domain.ProteinQuery) ([]string, error)
	SearchAnnotations(ctx context.Context, f *domain.SearchFilter) ([]domain.Record, error)
	Ping(ctx context.Context) error
	Close() error
}

// GatewayService validates gateway requests and runs them against the store.
// Every method invokes the store at most once and never after a validation
// failure.
type GatewayService struct {
	store QueryStore
}

// NewGatewayService creates a new gateway service
func NewGatewayService(store QueryStore) *GatewayService {
	return &GatewayService{store: store}
}

// RegionByProtein returns the regions overlapping position on proteinName
func (s *GatewayService) RegionByProtein(ctx context.Context, datasetID uint16, proteinName, position string) ([]domain.Record, error) {
	q, err := validator.RegionByProtein(datasetID, proteinName, position)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindRegionByProteinAndPosition(ctx, q)
	return nonEmpty(records, err, "region lookup", "region")
}

// Locate returns the regions a protein identifier maps to
func (s *GatewayService) Locate(ctx context.Context, datasetID uint16, proteinName string) ([]domain.Record, error) {
	q, err := validator.ProteinLookup(datasetID, proteinName)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindRegionsByProteinID(ctx, q)
	return nonEmpty(records, err, "protein locate", "protein")
}

// AnnotationsByRegion returns the annotations inside position on name
func (s *GatewayService) AnnotationsByRegion(ctx context.Context, datasetID uint16, name, position string) ([]domain.Record, error) {
	q, err := validator.AnnotationRegion(datasetID, name, position)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindAnnotationsByRegion(ctx, q)
	return nonEmpty(records, err, "annotation query", "annotation")
}

// InsertAnnotation stores a new annotation. The annotation id is always
// domain.InsertAnnotationID.
func (s *GatewayService) InsertAnnotation(ctx context.Context, a *domain.Annotation) error {
	if err := validator.AnnotationInsert(a); err != nil {
		return err
	}

	a.ID = domain.InsertAnnotationID
	ok, err := s.store.InsertAnnotation(ctx, a)
	if err != nil {
		return apperrors.StoreFailure("annotation insert", err)
	}
	if !ok {
		return apperrors.StoreFailure("annotation insert", errNotInserted)
	}
	return nil
}

// Autocomplete returns protein identifiers matching a partial name
func (s *GatewayService) Autocomplete(ctx context.Context, datasetID uint16, partial string) ([]string, error) {
	q, err := validator.ProteinLookup(datasetID, partial)
	if err != nil {
		return nil, err
	}

	ids, err := s.store.FindProteinIDsForAutocomplete(ctx, q)
	if err != nil {
		return nil, apperrors.StoreFailure("protein autocomplete", err)
	}
	if len(ids) == 0 {
		return nil, apperrors.NotFound("protein identifier")
	}
	return ids, nil
}

// ListDatasets returns every dataset. An empty listing is not an error.
func (s *GatewayService) ListDatasets(ctx context.Context) ([]domain.Record, error) {
	records, err := s.store.ListDatasets(ctx)
	if err != nil {
		return nil, apperrors.StoreFailure("dataset listing", err)
	}
	return records, nil
}

// SearchAnnotations returns the annotations matching f
func (s *GatewayService) SearchAnnotations(ctx context.Context, f *domain.SearchFilter) ([]domain.Record, error) {
	if err := validator.AnnotationSearch(f); err != nil {
		return nil, err
	}

	records, err := s.store.SearchAnnotations(ctx, f)
	return nonEmpty(records, err, "annotation search", "annotation")
}

// Ping checks that the store is reachable
func (s *GatewayService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return apperrors.StoreFailure("store ping", err)
	}
	return nil
}

func nonEmpty(records []domain.Record, err error, operation, resource string) ([]domain.Record, error) {
	if err != nil {
		return nil, apperrors.StoreFailure(operation, err)
	}
	if len(records) == 0 {
		return nil, apperrors.NotFound(resource)
	}
	return records, nil
}
