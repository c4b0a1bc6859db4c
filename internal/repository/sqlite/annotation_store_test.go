package sqlite

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondgbrowse/snowgate/internal/config"
	"github.com/beyondgbrowse/snowgate/internal/domain"
	"github.com/beyondgbrowse/snowgate/internal/pkg/database"
	"github.com/beyondgbrowse/snowgate/internal/repository/statements"
)

const seed = `
INSERT INTO datasets (id, name) VALUES (1, 'hela'), (2, 'yeast');

INSERT INTO protein_regions
	(dataset_id, scan_id, uniprot_id, ensembl_id, ref_name, start_pos, end_pos, strand, sequence, mass_array, peak_abundance, fragmentation)
VALUES
	(1, 998, 'H32_HUMAN', 'ENSP00000355778', 'chr1', 149813549, 149813576, '-', 'ARTKQTARKSTGGKAPRKQLATKAARKS', '100.1,200.2', '5,7', 'HCD'),
	(1, 999, 'H32_HUMAN', 'ENSP00000355778', 'chr1', 149813600, 149813650, '-', 'PEPTIDE', '', '', 'HCD'),
	(1, 1001, 'H3C_HUMAN', 'ENSP00000444823', 'chr6', 26031800, 26031900, '+', 'SEQ', '', '', 'CID'),
	(1, 1002, 'XH3_MOUSE', '', 'chr11', 500, 600, '+', 'SEQ', '', '', 'CID'),
	(2, 7, 'H32_HUMAN', '', 'chrII', 10, 20, '+', 'SEQ', '', '', 'CID');
`

func newTestStore(t *testing.T, limit int) *AnnotationStore {
	t.Helper()

	db, err := database.NewSQLite(context.Background(), config.SQLiteConfig{Path: ":memory:"}, statements.SQLiteSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewAnnotationStore(db.DB, limit)
}

func newSeededStore(t *testing.T, limit int) *AnnotationStore {
	t.Helper()

	store := newTestStore(t, limit)
	_, err := store.db.Exec(seed)
	require.NoError(t, err)
	return store
}

func region(datasetID uint16, name string, start, end int64) *domain.RegionQuery {
	return &domain.RegionQuery{
		DatasetID: datasetID,
		Region:    domain.SequenceRegion{ReferenceName: name, Start: start, End: end},
	}
}

func TestAnnotationStore_LocateThenRef(t *testing.T) {
	store := newSeededStore(t, 10)
	ctx := context.Background()

	located, err := store.FindRegionsByProteinID(ctx, &domain.ProteinQuery{DatasetID: 1, ProteinName: "H32_HUMAN"})
	require.NoError(t, err)
	require.Len(t, located, 2)
	assert.Equal(t, "chr1", located[0]["name"])
	assert.Equal(t, "149813549", located[0]["_start"])
	assert.Equal(t, "149813576", located[0]["end"])

	first := located[0]
	start, err := strconv.ParseInt(first["_start"].(string), 10, 64)
	require.NoError(t, err)
	end, err := strconv.ParseInt(first["end"].(string), 10, 64)
	require.NoError(t, err)

	regions, err := store.FindRegionByProteinAndPosition(ctx, region(1, first["name"].(string), start, end))
	require.NoError(t, err)
	require.NotEmpty(t, regions)
	assert.Equal(t, int64(998), regions[0]["scanId"])
	assert.Equal(t, "H32_HUMAN", regions[0]["uniprot_id"])
	assert.Equal(t, "100.1,200.2", regions[0]["arrMSScanMassArray"])
	assert.Equal(t, "5,7", regions[0]["arrMSScanPeakAundance"])
}

func TestAnnotationStore_FindRegionByProteinAndPosition(t *testing.T) {
	store := newSeededStore(t, 10)
	ctx := context.Background()

	t.Run("matches by protein identifier", func(t *testing.T) {
		regions, err := store.FindRegionByProteinAndPosition(ctx, region(1, "H32_HUMAN", 149813560, 149813610))
		require.NoError(t, err)
		assert.Len(t, regions, 2)
	})

	t.Run("matches by ensembl identifier", func(t *testing.T) {
		regions, err := store.FindRegionByProteinAndPosition(ctx, region(1, "ENSP00000444823", 26031850, 26031851))
		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "chr6", regions[0]["name"])
	})

	t.Run("no overlap", func(t *testing.T) {
		regions, err := store.FindRegionByProteinAndPosition(ctx, region(1, "chr1", 1, 2))
		require.NoError(t, err)
		assert.Empty(t, regions)
	})

	t.Run("scoped to dataset", func(t *testing.T) {
		regions, err := store.FindRegionByProteinAndPosition(ctx, region(2, "chr1", 149813549, 149813576))
		require.NoError(t, err)
		assert.Empty(t, regions)
	})
}

func TestAnnotationStore_FindRegionsByProteinID_Unknown(t *testing.T) {
	store := newSeededStore(t, 10)

	located, err := store.FindRegionsByProteinID(context.Background(), &domain.ProteinQuery{DatasetID: 1, ProteinName: "NOPE_HUMAN"})
	require.NoError(t, err)
	assert.Empty(t, located)
}

func TestAnnotationStore_InsertAndQueryAnnotations(t *testing.T) {
	store := newSeededStore(t, 10)
	ctx := context.Background()

	ok, err := store.InsertAnnotation(ctx, &domain.Annotation{
		DatasetID:      1,
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

	records, err := store.FindAnnotationsByRegion(ctx, region(1, "Scan998", 85, 92))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "phospho site", records[0]["contents"])
	assert.Equal(t, "89", records[0]["position"])
	assert.Equal(t, "Scan998", records[0]["name"])
	assert.Equal(t, "2024-03-01T10:00:00.000", records[0]["time"])

	records, err = store.FindAnnotationsByRegion(ctx, region(1, "Scan998", 90, 92))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnnotationStore_ListDatasets(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		store := newTestStore(t, 10)
		records, err := store.ListDatasets(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ordered by id", func(t *testing.T) {
		store := newSeededStore(t, 10)
		records, err := store.ListDatasets(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, int64(1), records[0]["id"])
		assert.Equal(t, "hela", records[0]["name"])
		assert.Equal(t, "yeast", records[1]["name"])
	})
}

func TestAnnotationStore_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("distinct ids with prefix matches first", func(t *testing.T) {
		store := newSeededStore(t, 10)
		ids, err := store.FindProteinIDsForAutocomplete(ctx, &domain.ProteinQuery{DatasetID: 1, ProteinName: "H3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"H32_HUMAN", "H3C_HUMAN", "XH3_MOUSE"}, ids)
	})

	t.Run("limit applies", func(t *testing.T) {
		store := newSeededStore(t, 2)
		ids, err := store.FindProteinIDsForAutocomplete(ctx, &domain.ProteinQuery{DatasetID: 1, ProteinName: "H3"})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		store := newSeededStore(t, 10)
		ids, err := store.FindProteinIDsForAutocomplete(ctx, &domain.ProteinQuery{DatasetID: 1, ProteinName: "%"})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestAnnotationStore_SearchAnnotations(t *testing.T) {
	store := newSeededStore(t, 10)
	ctx := context.Background()

	annotations := []domain.Annotation{
		{DatasetID: 10, ReferenceName: "chr1", Position: 100, Time: "t1", Contents: "kinase motif", AuthorUsername: "wz", RemoteAddress: "10.0.0.1"},
		{DatasetID: 10, ReferenceName: "chr1", Position: 200, Time: "t2", Contents: "50% coverage", AuthorUsername: "ab", RemoteAddress: "10.0.0.2"},
		{DatasetID: 11, ReferenceName: "chr2", Position: 300, Time: "t3", Contents: "kinase domain", AuthorUsername: "wz", RemoteAddress: "10.0.0.1"},
	}
	for i := range annotations {
		ok, err := store.InsertAnnotation(ctx, &annotations[i])
		require.NoError(t, err)
		require.True(t, ok)
	}

	tests := []struct {
		name     string
		filter   domain.SearchFilter
		contents []string
	}{
		{name: "by contents", filter: domain.SearchFilter{DatasetID: 10, ID: domain.NoAnnotationID, Contents: "kinase"}, contents: []string{"kinase motif"}},
		{name: "by author", filter: domain.SearchFilter{DatasetID: 10, ID: domain.NoAnnotationID, AuthorUsername: "ab"}, contents: []string{"50% coverage"}},
		{name: "by address", filter: domain.SearchFilter{DatasetID: 11, ID: domain.NoAnnotationID, RemoteAddress: "10.0.0.1"}, contents: []string{"kinase domain"}},
		{name: "by id", filter: domain.SearchFilter{DatasetID: 10, ID: 0}, contents: []string{"kinase motif", "50% coverage"}},
		{name: "percent is literal", filter: domain.SearchFilter{DatasetID: 10, ID: domain.NoAnnotationID, Contents: "0%"}, contents: []string{"50% coverage"}},
		{name: "fields combine", filter: domain.SearchFilter{DatasetID: 10, ID: domain.NoAnnotationID, Contents: "kinase", AuthorUsername: "ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			records, err := store.SearchAnnotations(ctx, &f)
			require.NoError(t, err)

			var got []string
			for _, r := range records {
				got = append(got, r["contents"].(string))
			}
			assert.Equal(t, tt.contents, got)
		})
	}
}

func TestAnnotationStore_PingClose(t *testing.T) {
	store := newTestStore(t, 10)
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Close())
	assert.Error(t, store.Ping(context.Background()))
}

func newMockStore(t *testing.T) (*AnnotationStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewAnnotationStore(sqlx.NewDb(mockDB, "sqlmock"), 10), mock
}

func TestAnnotationStore_QueryFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT id, name FROM datasets").WillReturnError(errors.New("disk I/O error"))

	records, err := store.ListDatasets(context.Background())
	assert.Nil(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnotationStore_RowIterationFailure(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "hela").
		RowError(0, errors.New("connection reset"))
	mock.ExpectQuery("SELECT id, name FROM datasets").WillReturnRows(rows)

	_, err := store.ListDatasets(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnotationStore_InsertNoRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO annotations").WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.InsertAnnotation(context.Background(), &domain.Annotation{ReferenceName: "chr1", Time: "t", Contents: "c"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnotationStore_InsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO annotations").WillReturnError(errors.New("database is locked"))

	ok, err := store.InsertAnnotation(context.Background(), &domain.Annotation{ReferenceName: "chr1", Time: "t", Contents: "c"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnotationStore_AutocompleteFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT uniprot_id").WillReturnError(errors.New("no such table: protein_regions"))

	ids, err := store.FindProteinIDsForAutocomplete(context.Background(), &domain.ProteinQuery{DatasetID: 1, ProteinName: "H3"})
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalize(t *testing.T) {
	r := normalize(map[string]any{"name": []byte("chr1"), "id": int64(3)})
	assert.Equal(t, domain.Record{"name": "chr1", "id": int64(3)}, r)
}
