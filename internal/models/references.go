package models

// ReferencesModel carries the IPCC sectors referenced by the entries of a response.
type ReferencesModel struct {
	Sectors []SectorReference `json:"sectors"`
}

// NewEmptyReferences returns references with non-nil empty lists.
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Sectors: []SectorReference{},
	}
}
