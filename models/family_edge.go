package models

// FamilyEdge stores a person's single optional parent ("big").
// Edges are keyed on internal person IDs, never on nicknames, so renaming a
// nickname leaves the family graph intact. A person appears as ParentID on
// zero or more rows; those rows are their children ("littles").
type FamilyEdge struct {
	PersonID uint  `gorm:"primaryKey;autoIncrement:false" json:"person_id"`
	ParentID *uint `json:"parent_id"`
}

// TableName explicitly sets the table name for GORM.
func (FamilyEdge) TableName() string {
	return "family_edges"
}
