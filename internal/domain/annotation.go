package domain

// InsertAnnotationID is the identifier passed to the store for every insert.
// The insert route has no caller-supplied annotation id; the store schema
// keeps the column, so the value is fixed.
const InsertAnnotationID int32 = 0

// NoAnnotationID marks a search without an id constraint. Clients send it
// explicitly as id=-1.
const NoAnnotationID int32 = -1

// MinSearchDatasetID and MaxSearchDatasetID bound the open range of
// dataset ids accepted by annotation search.
const (
	MinSearchDatasetID = 0
	MaxSearchDatasetID = 5000
)

// Annotation is a free-text note anchored to a coordinate. It is immutable
// once stored.
type Annotation struct {
	DatasetID      uint16 `json:"datasetId"`
	ID             int32  `json:"id"`
	ReferenceName  string `json:"name" validate:"required"`
	Position       int32  `json:"position"`
	Time           string `json:"time" validate:"required"`
	Contents       string `json:"contents" validate:"required"`
	AuthorUsername string `json:"author"`
	RemoteAddress  string `json:"ipaddress"`
}

// SearchFilter constrains an annotation search. Empty string fields and a
// negative ID mean "no constraint on that field".
type SearchFilter struct {
	DatasetID      uint16 `validate:"gt=0,lt=5000"`
	ID             int32
	Contents       string
	AuthorUsername string
	RemoteAddress  string
}

// HasID reports whether the filter constrains the annotation id
func (f SearchFilter) HasID() bool {
	return f.ID >= 0
}

// HasConstraint reports whether at least one filter field is set
func (f SearchFilter) HasConstraint() bool {
	return f.HasID() || f.Contents != "" || f.AuthorUsername != "" || f.RemoteAddress != ""
}
