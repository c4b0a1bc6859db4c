package postgres

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondgbrowse/snowgate/internal/domain"
)

func TestAnnotationStore_LocateThenRef(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	cleanupDataset(t, db)
	defer cleanupDataset(t, db)
	seedDataset(t, db)

	store := NewAnnotationStore(db, 10)
	ctx := context.Background()

	located, err := store.FindRegionsByProteinID(ctx, &domain.ProteinQuery{DatasetID: testDatasetID, ProteinName: "H32_HUMAN"})
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, "chr1", located[0]["name"])
	assert.Equal(t, "149813549", located[0]["_start"])

	start, err := strconv.ParseInt(located[0]["_start"].(string), 10, 64)
	require.NoError(t, err)
	end, err := strconv.ParseInt(located[0]["end"].(string), 10, 64)
	require.NoError(t, err)

	regions, err := store.FindRegionByProteinAndPosition(ctx, &domain.RegionQuery{
		DatasetID: testDatasetID,
		Region:    domain.SequenceRegion{ReferenceName: "chr1", Start: start, End: end},
	})
	require.NoError(t, err)
	require.NotEmpty(t, regions)
	assert.Equal(t, "H32_HUMAN", regions[0]["uniprot_id"])
}

func TestAnnotationStore_InsertAndSearch(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	cleanupDataset(t, db)
	defer cleanupDataset(t, db)

	store := NewAnnotationStore(db, 10)
	ctx := context.Background()

	ok, err := store.InsertAnnotation(ctx, &domain.Annotation{
		DatasetID:      testDatasetID,
		ID:             domain.InsertAnnotationID,
		ReferenceName:  "Scan998",
		Position:       89,
		Time:           "2024-03-01T10:00:00.000",
		Contents:       "phospho site",
		AuthorUsername: "wz",
		RemoteAddress:  "10.0.0.1",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := store.FindAnnotationsByRegion(ctx, &domain.RegionQuery{
		DatasetID: testDatasetID,
		Region:    domain.SequenceRegion{ReferenceName: "Scan998", Start: 85, End: 92},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "89", records[0]["position"])

	found, err := store.SearchAnnotations(ctx, &domain.SearchFilter{
		DatasetID: testDatasetID,
		ID:        domain.NoAnnotationID,
		Contents:  "phospho",
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "wz", found[0]["author"])
}

func TestAnnotationStore_AutocompleteAndDatasets(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	cleanupDataset(t, db)
	defer cleanupDataset(t, db)
	seedDataset(t, db)

	store := NewAnnotationStore(db, 10)
	ctx := context.Background()

	ids, err := store.FindProteinIDsForAutocomplete(ctx, &domain.ProteinQuery{DatasetID: testDatasetID, ProteinName: "H3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"H32_HUMAN", "H3C_HUMAN"}, ids)

	datasets, err := store.ListDatasets(ctx)
	require.NoError(t, err)

	var names []any
	for _, d := range datasets {
		names = append(names, d["name"])
	}
	assert.Contains(t, names, "integration")

	require.NoError(t, store.Ping(ctx))
}
