package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beyondgbrowse/snowgate/internal/config"
	"github.com/beyondgbrowse/snowgate/internal/pkg/database"
	"github.com/beyondgbrowse/snowgate/internal/repository/statements"
)

// testDatasetID keeps integration rows apart from anything else in the database
const testDatasetID = 4242

// getTestDB returns a database connection for integration tests.
// Returns nil if the database is not available (skips tests).
func getTestDB(t *testing.T) *database.PostgresDB {
	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
		return nil
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("POSTGRES_TEST_HOST"),
		Port:     5432,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASS"),
		Database: os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	if port, err := strconv.Atoi(os.Getenv("POSTGRES_TEST_PORT")); err == nil {
		cfg.Port = port
	}
	if cfg.Database == "" {
		cfg.Database = "test_snowgate"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
		return nil
	}

	_, err = db.Pool.Exec(context.Background(), statements.PostgresSchema)
	require.NoError(t, err)

	return db
}

// cleanupDataset removes every row of the integration dataset
func cleanupDataset(t *testing.T, db *database.PostgresDB) {
	ctx := context.Background()
	_, _ = db.Pool.Exec(ctx, "DELETE FROM annotations WHERE dataset_id = $1", testDatasetID)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM protein_regions WHERE dataset_id = $1", testDatasetID)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM datasets WHERE id = $1", testDatasetID)
}

func seedDataset(t *testing.T, db *database.PostgresDB) {
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, "INSERT INTO datasets (id, name) VALUES ($1, $2)", testDatasetID, "integration")
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO protein_regions
			(dataset_id, scan_id, uniprot_id, ensembl_id, ref_name, start_pos, end_pos, strand, sequence, mass_array, peak_abundance, fragmentation)
		VALUES
			($1, 998, 'H32_HUMAN', 'ENSP00000355778', 'chr1', 149813549, 149813576, '-', 'ARTKQ', '100.1', '5', 'HCD'),
			($1, 1001, 'H3C_HUMAN', 'ENSP00000444823', 'chr6', 26031800, 26031900, '+', 'SEQ', '', '', 'CID')
	`, testDatasetID)
	require.NoError(t, err)
}
