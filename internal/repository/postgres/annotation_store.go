package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/beyondgbrowse/snowgate/internal/domain"
	"github.com/beyondgbrowse/snowgate/internal/pkg/database"
	"github.com/beyondgbrowse/snowgate/internal/pkg/metrics"
	"github.com/beyondgbrowse/snowgate/internal/repository/statements"
)

const metricsDatabase = "postgres"

// AnnotationStore serves region, protein and annotation lookups from PostgreSQL
type AnnotationStore struct {
	db    *database.PostgresDB
	sql   *statements.Set
	limit int
}

// NewAnnotationStore creates a new PostgreSQL annotation store. limit caps
// the number of autocomplete suggestions.
func NewAnnotationStore(db *database.PostgresDB, limit int) *AnnotationStore {
	return &AnnotationStore{
		db:    db,
		sql:   statements.New(sqlx.DOLLAR),
		limit: limit,
	}
}

// FindRegionByProteinAndPosition returns the regions of a reference
// overlapping the query span
func (s *AnnotationStore) FindRegionByProteinAndPosition(ctx context.Context, q *domain.RegionQuery) (records []domain.Record, err error) {
	defer observe("region_by_position", time.Now(), &err)
	return s.queryRecords(ctx, s.sql.RegionByProteinAndPosition, statements.RegionArgs(q)...)
}

// FindRegionsByProteinID returns the distinct regions a protein maps to
func (s *AnnotationStore) FindRegionsByProteinID(ctx context.Context, q *domain.ProteinQuery) (records []domain.Record, err error) {
	defer observe("regions_by_protein", time.Now(), &err)
	name := q.ProteinName
	return s.queryRecords(ctx, s.sql.RegionsByProteinID, int32(q.DatasetID), name, name)
}

// FindAnnotationsByRegion returns annotations positioned inside the span
func (s *AnnotationStore) FindAnnotationsByRegion(ctx context.Context, q *domain.RegionQuery) (records []domain.Record, err error) {
	defer observe("annotations_by_region", time.Now(), &err)
	return s.queryRecords(ctx, s.sql.AnnotationsByRegion, statements.AnnotationRegionArgs(q)...)
}

// InsertAnnotation stores a, reporting whether exactly one row was written
func (s *AnnotationStore) InsertAnnotation(ctx context.Context, a *domain.Annotation) (ok bool, err error) {
	defer observe("insert_annotation", time.Now(), &err)

	tag, err := s.db.Pool.Exec(ctx, s.sql.InsertAnnotation, statements.InsertArgs(a)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert annotation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListDatasets returns every dataset ordered by id
func (s *AnnotationStore) ListDatasets(ctx context.Context) (records []domain.Record, err error) {
	defer observe("list_datasets", time.Now(), &err)
	return s.queryRecords(ctx, s.sql.ListDatasets)
}

// FindProteinIDsForAutocomplete returns protein identifiers containing the
// partial name, prefix matches first
func (s *AnnotationStore) FindProteinIDsForAutocomplete(ctx context.Context, q *domain.ProteinQuery) (ids []string, err error) {
	defer observe("autocomplete", time.Now(), &err)

	rows, err := s.db.Pool.Query(ctx, s.sql.ProteinIDsForAutocomplete, statements.AutocompleteArgs(q, s.limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query protein ids: %w", err)
	}
	ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan protein ids: %w", err)
	}
	return ids, nil
}

// SearchAnnotations returns annotations matching every field set on f
func (s *AnnotationStore) SearchAnnotations(ctx context.Context, f *domain.SearchFilter) (records []domain.Record, err error) {
	defer observe("search_annotations", time.Now(), &err)
	query, args := s.sql.Search(f)
	return s.queryRecords(ctx, query, args...)
}

// Ping checks the pool
func (s *AnnotationStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool
func (s *AnnotationStore) Close() error {
	s.db.Close()
	return nil
}

func (s *AnnotationStore) queryRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Record, error) {
		m, err := pgx.RowToMap(row)
		return domain.Record(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows: %w", err)
	}
	return records, nil
}

func observe(operation string, start time.Time, err *error) {
	metrics.ObserveDB(metricsDatabase, operation, start, *err)
}
