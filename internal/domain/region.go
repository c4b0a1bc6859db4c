package domain

// PositionSeparator splits a compound "<start>..<end>" position
const PositionSeparator = ".."

// SequenceRegion is a coordinate span on a reference sequence
type SequenceRegion struct {
	ReferenceName string `json:"name" validate:"required"`
	Start         int64  `json:"_start"`
	End           int64  `json:"end"`
}

// RegionQuery looks up features overlapping a region of one dataset
type RegionQuery struct {
	DatasetID uint16
	Region    SequenceRegion
}

// ProteinQuery looks up regions or identifiers for a protein name
type ProteinQuery struct {
	DatasetID   uint16
	ProteinName string `validate:"required"`
}
