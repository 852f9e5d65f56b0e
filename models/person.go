package models

// Person represents a roster member using GORM.
// It corresponds to the 'people' table.
//
// SequenceNumber is the member's permanent global number: assigned once at
// creation, never changed, never reused after deletion. Position is the
// group-scoped display sort key; it is mutable, may hold fractional values
// between reorder and renormalize, and carries no identity meaning.
type Person struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      string  `gorm:"uniqueIndex;not null" json:"uuid"`
	GroupID   uint    `gorm:"not null;uniqueIndex:idx_people_group_nickname" json:"group_id"`
	FirstName string  `gorm:"not null" json:"first_name"`
	LastName  string  `gorm:"not null" json:"last_name"`
	Nickname  string  `gorm:"not null;uniqueIndex:idx_people_group_nickname" json:"nickname"`
	FullName  string  `json:"full_name"`
	Honorific string  `gorm:"not null;default:Mr." json:"honorific"`
	Bio       *string `json:"bio,omitempty"`

	SequenceNumber *int64  `gorm:"uniqueIndex" json:"sequence_number"`
	Position       float64 `gorm:"not null;index" json:"position"`

	// structured profile fields
	Major         *string `json:"major,omitempty"`
	Age           *string `json:"age,omitempty"`
	Ethnicity     *string `json:"ethnicity,omitempty"`
	Hometown      *string `json:"hometown,omitempty"`
	ContactHandle *string `json:"contact_handle,omitempty"`

	// imported profile fields (free-form, populated by bulk import)
	Phone                *string `json:"phone,omitempty"`
	Emails               *string `json:"emails,omitempty"`
	Standing             *string `json:"standing,omitempty"`
	ShirtSize            *string `json:"shirt_size,omitempty"`
	Birthday             *string `json:"birthday,omitempty"`
	LineageNote          *string `json:"lineage_note,omitempty"`
	PersonalityCode      *string `json:"personality_code,omitempty"`
	LoveLanguage         *string `json:"love_language,omitempty"`
	FascinationAdvantage *string `json:"fascination_advantage,omitempty"`
	Notes                *string `json:"notes,omitempty"`
	Interest             *string `json:"interest,omitempty"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp
	UpdatedAt int64 `gorm:"not null" json:"updated_at"` // Stored as INTEGER in SQLite, Unix timestamp

	// Relationships
	// omitempty will hide these if they are not preloaded or are empty
	Socials []SocialHandle `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"socials,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}
