package statements

// SQLiteSchema bootstraps an embedded store. It is idempotent and is not a
// migration system: existing tables are left untouched.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS datasets (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS protein_regions (
	dataset_id     INTEGER NOT NULL REFERENCES datasets(id),
	scan_id        INTEGER NOT NULL DEFAULT 0,
	uniprot_id     TEXT NOT NULL,
	ensembl_id     TEXT NOT NULL DEFAULT '',
	ref_name       TEXT NOT NULL,
	start_pos      INTEGER NOT NULL,
	end_pos        INTEGER NOT NULL,
	strand         TEXT NOT NULL DEFAULT '+',
	sequence       TEXT NOT NULL DEFAULT '',
	mass_array     TEXT NOT NULL DEFAULT '',
	peak_abundance TEXT NOT NULL DEFAULT '',
	fragmentation  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_protein_regions_ref
	ON protein_regions (dataset_id, ref_name, start_pos);
CREATE INDEX IF NOT EXISTS idx_protein_regions_uniprot
	ON protein_regions (dataset_id, uniprot_id);

CREATE TABLE IF NOT EXISTS annotations (
	row_id        INTEGER PRIMARY KEY AUTOINCREMENT,
	dataset_id    INTEGER NOT NULL,
	annotation_id INTEGER NOT NULL DEFAULT 0,
	ref_name      TEXT NOT NULL,
	pos           INTEGER NOT NULL,
	created_time  TEXT NOT NULL,
	contents      TEXT NOT NULL,
	author        TEXT NOT NULL DEFAULT '',
	ip_address    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_annotations_region
	ON annotations (dataset_id, ref_name, pos);
`

// PostgresSchema is the PostgreSQL layout the store queries. Schema changes
// are applied out of band; integration tests create it in a scratch database.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS datasets (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS protein_regions (
	dataset_id     INTEGER NOT NULL REFERENCES datasets(id),
	scan_id        BIGINT NOT NULL DEFAULT 0,
	uniprot_id     TEXT NOT NULL,
	ensembl_id     TEXT NOT NULL DEFAULT '',
	ref_name       TEXT NOT NULL,
	start_pos      BIGINT NOT NULL,
	end_pos        BIGINT NOT NULL,
	strand         TEXT NOT NULL DEFAULT '+',
	sequence       TEXT NOT NULL DEFAULT '',
	mass_array     TEXT NOT NULL DEFAULT '',
	peak_abundance TEXT NOT NULL DEFAULT '',
	fragmentation  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_protein_regions_ref
	ON protein_regions (dataset_id, ref_name, start_pos);
CREATE INDEX IF NOT EXISTS idx_protein_regions_uniprot
	ON protein_regions (dataset_id, uniprot_id);

CREATE TABLE IF NOT EXISTS annotations (
	row_id        BIGSERIAL PRIMARY KEY,
	dataset_id    INTEGER NOT NULL,
	annotation_id INTEGER NOT NULL DEFAULT 0,
	ref_name      TEXT NOT NULL,
	pos           BIGINT NOT NULL,
	created_time  TEXT NOT NULL,
	contents      TEXT NOT NULL,
	author        TEXT NOT NULL DEFAULT '',
	ip_address    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_annotations_region
	ON annotations (dataset_id, ref_name, pos);
`
