package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/beyondgbrowse/snowgate/internal/domain"
)

// NewTestAnnotation creates an annotation that passes insert validation.
func NewTestAnnotation() *domain.Annotation {
	return &domain.Annotation{
		DatasetID:      1,
		ReferenceName:  "chr1",
		Position:       89,
		Time:           "2024-03-01T10:00:00.000",
		Contents:       "phospho site",
		AuthorUsername: "wz",
		RemoteAddress:  "10.0.0.1",
	}
}

// NewTestRegionRecords returns region rows shaped like the store output.
func NewTestRegionRecords() []domain.Record {
	return []domain.Record{
		{
			"scanId":     int64(998),
			"uniprot_id": "H32_HUMAN",
			"name":       "chr1",
			"_start":     int64(149813549),
			"end":        int64(149813576),
			"strand":     "-",
		},
	}
}

// NewObservedLogger returns a logger recording entries at debug and above.
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
