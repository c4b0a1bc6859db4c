package domain

// Dataset is a named collection of sequence and annotation data
type Dataset struct {
	ID   uint16 `json:"id"`
	Name string `json:"name"`
}

// Record returns the dataset as a flat row
func (d Dataset) Record() Record {
	return Record{"id": d.ID, "name": d.Name}
}
