// Package statements holds the SQL shared by the PostgreSQL and SQLite
// annotation stores. Statements are written with '?' placeholders and
// rebound per driver with sqlx.Rebind.
package statements

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/beyondgbrowse/snowgate/internal/domain"
)

const regionByProteinAndPosition = `
	SELECT
		scan_id AS "scanId",
		uniprot_id,
		ref_name AS "name",
		start_pos AS "_start",
		end_pos AS "end",
		strand,
		sequence,
		mass_array AS "arrMSScanMassArray",
		peak_abundance AS "arrMSScanPeakAundance",
		fragmentation
	FROM protein_regions
	WHERE dataset_id = ?
		AND (ref_name = ? OR uniprot_id = ? OR ensembl_id = ?)
		AND start_pos <= ?
		AND end_pos >= ?
	ORDER BY start_pos, scan_id
`

const regionsByProteinID = `
	SELECT
		ref_name AS "name",
		CAST(start_pos AS TEXT) AS "_start",
		CAST(end_pos AS TEXT) AS "end"
	FROM protein_regions
	WHERE dataset_id = ? AND (uniprot_id = ? OR ensembl_id = ?)
	GROUP BY ref_name, start_pos, end_pos
	ORDER BY ref_name, start_pos
`

const annotationsByRegion = `
	SELECT
		contents,
		ref_name AS "name",
		CAST(pos AS TEXT) AS "position",
		created_time AS "time"
	FROM annotations
	WHERE dataset_id = ? AND ref_name = ? AND pos BETWEEN ? AND ?
	ORDER BY pos, row_id
`

const insertAnnotation = `
	INSERT INTO annotations (
		dataset_id, annotation_id, ref_name, pos, created_time, contents, author, ip_address
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const listDatasets = `SELECT id, name FROM datasets ORDER BY id`

const proteinIDsForAutocomplete = `
	SELECT uniprot_id
	FROM protein_regions
	WHERE dataset_id = ? AND uniprot_id LIKE ? ESCAPE '\'
	GROUP BY uniprot_id
	ORDER BY CASE WHEN uniprot_id LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, LENGTH(uniprot_id), uniprot_id
	LIMIT ?
`

const searchAnnotationsBase = `
	SELECT
		dataset_id AS "datasetId",
		annotation_id AS "id",
		ref_name AS "name",
		CAST(pos AS TEXT) AS "position",
		created_time AS "time",
		contents,
		author,
		ip_address AS "ipaddress"
	FROM annotations
	WHERE dataset_id = ?`

// Set is the statement set for one placeholder style
type Set struct {
	bindType int

	RegionByProteinAndPosition string
	RegionsByProteinID         string
	AnnotationsByRegion        string
	InsertAnnotation           string
	ListDatasets               string
	ProteinIDsForAutocomplete  string
}

// New returns the statements rebound for bindType (sqlx.DOLLAR, sqlx.QUESTION, ...)
func New(bindType int) *Set {
	return &Set{
		bindType:                   bindType,
		RegionByProteinAndPosition: sqlx.Rebind(bindType, regionByProteinAndPosition),
		RegionsByProteinID:         sqlx.Rebind(bindType, regionsByProteinID),
		AnnotationsByRegion:        sqlx.Rebind(bindType, annotationsByRegion),
		InsertAnnotation:           sqlx.Rebind(bindType, insertAnnotation),
		ListDatasets:               listDatasets,
		ProteinIDsForAutocomplete:  sqlx.Rebind(bindType, proteinIDsForAutocomplete),
	}
}

// RegionArgs returns the arguments of RegionByProteinAndPosition
func RegionArgs(q *domain.RegionQuery) []any {
	name := q.Region.ReferenceName
	return []any{int32(q.DatasetID), name, name, name, q.Region.End, q.Region.Start}
}

// AnnotationRegionArgs returns the arguments of AnnotationsByRegion
func AnnotationRegionArgs(q *domain.RegionQuery) []any {
	return []any{int32(q.DatasetID), q.Region.ReferenceName, q.Region.Start, q.Region.End}
}

// InsertArgs returns the arguments of InsertAnnotation
func InsertArgs(a *domain.Annotation) []any {
	return []any{
		int32(a.DatasetID),
		a.ID,
		a.ReferenceName,
		a.Position,
		a.Time,
		a.Contents,
		a.AuthorUsername,
		a.RemoteAddress,
	}
}

// AutocompleteArgs returns the arguments of ProteinIDsForAutocomplete
func AutocompleteArgs(q *domain.ProteinQuery, limit int) []any {
	partial := EscapeLike(q.ProteinName)
	return []any{int32(q.DatasetID), "%" + partial + "%", partial + "%", limit}
}

// Search builds the annotation search statement for f. Only the fields set
// on the filter constrain the result.
func (s *Set) Search(f *domain.SearchFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(searchAnnotationsBase)
	args := []any{int32(f.DatasetID)}

	if f.HasID() {
		b.WriteString(" AND annotation_id = ?")
		args = append(args, f.ID)
	}
	if f.Contents != "" {
		b.WriteString(` AND contents LIKE ? ESCAPE '\'`)
		args = append(args, "%"+EscapeLike(f.Contents)+"%")
	}
	if f.AuthorUsername != "" {
		b.WriteString(" AND author = ?")
		args = append(args, f.AuthorUsername)
	}
	if f.RemoteAddress != "" {
		b.WriteString(" AND ip_address = ?")
		args = append(args, f.RemoteAddress)
	}
	b.WriteString(" ORDER BY row_id")

	return sqlx.Rebind(s.bindType, b.String()), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user input matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
