// Package sqlite implements the annotation store on an embedded SQLite
// database. It serves local mode and the integration tests.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beyondgbrowse/snowgate/internal/domain"
	"github.com/beyondgbrowse/snowgate/internal/pkg/metrics"
	"github.com/beyondgbrowse/snowgate/internal/repository/statements"
)

const metricsDatabase = "sqlite"

// AnnotationStore serves region, protein and annotation lookups from SQLite
type AnnotationStore struct {
	db    *sqlx.DB
	sql   *statements.Set
	limit int
}

// NewAnnotationStore creates a new SQLite annotation store
func NewAnnotationStore(db *sqlx.DB, limit int) *AnnotationStore {
	return &AnnotationStore{
		db:    db,
		sql:   statements.New(sqlx.QUESTION),
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

	res, err := s.db.ExecContext(ctx, s.sql.InsertAnnotation, statements.InsertArgs(a)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert annotation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
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

	if err := s.db.SelectContext(ctx, &ids, s.sql.ProteinIDsForAutocomplete, statements.AutocompleteArgs(q, s.limit)...); err != nil {
		return nil, fmt.Errorf("failed to query protein ids: %w", err)
	}
	return ids, nil
}

// SearchAnnotations returns annotations matching every field set on f
func (s *AnnotationStore) SearchAnnotations(ctx context.Context, f *domain.SearchFilter) (records []domain.Record, err error) {
	defer observe("search_annotations", time.Now(), &err)
	query, args := s.sql.Search(f)
	return s.queryRecords(ctx, query, args...)
}

// Ping checks the database
func (s *AnnotationStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *AnnotationStore) Close() error {
	return s.db.Close()
}

func (s *AnnotationStore) queryRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		m := make(map[string]any)
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, normalize(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}

// normalize turns TEXT columns scanned as []byte into strings
func normalize(m map[string]any) domain.Record {
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			m[k] = string(b)
		}
	}
	return domain.Record(m)
}

func observe(operation string, start time.Time, err *error) {
	metrics.ObserveDB(metricsDatabase, operation, start, *err)
}
