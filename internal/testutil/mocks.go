// Package testutil provides shared test utilities for the gateway.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/beyondgbrowse/snowgate/internal/domain"
)

// MockQueryStore is a mock implementation of service.QueryStore
type MockQueryStore struct {
	mock.Mock
}

func (m *MockQueryStore) FindRegionByProteinAndPosition(ctx context.Context, q *domain.RegionQuery) ([]domain.Record, error) {
	args := m.Called(ctx, q)
	return records(args)
}

func (m *MockQueryStore) FindRegionsByProteinID(ctx context.Context, q *domain.ProteinQuery) ([]domain.Record, error) {
	args := m.Called(ctx, q)
	return records(args)
}

func (m *MockQueryStore) FindAnnotationsByRegion(ctx context.Context, q *domain.RegionQuery) ([]domain.Record, error) {
	args := m.Called(ctx, q)
	return records(args)
}

func (m *MockQueryStore) InsertAnnotation(ctx context.Context, a *domain.Annotation) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockQueryStore) ListDatasets(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	return records(args)
}

func (m *MockQueryStore) FindProteinIDsForAutocomplete(ctx context.Context, q *domain.ProteinQuery) ([]string, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQueryStore) SearchAnnotations(ctx context.Context, f *domain.SearchFilter) ([]domain.Record, error) {
	args := m.Called(ctx, f)
	return records(args)
}

func (m *MockQueryStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQueryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func records(args mock.Arguments) ([]domain.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
