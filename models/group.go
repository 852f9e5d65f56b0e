package models

// Group represents a named, globally ordered collection of people.
// It corresponds to the 'groups' table.
type Group struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	OrderKey  int    `gorm:"not null" json:"order_key"` // lower sorts first; not required unique
	CreatedAt int64  `gorm:"not null" json:"created_at"`
	UpdatedAt int64  `gorm:"not null" json:"updated_at"`

	People []Person `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"people,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
