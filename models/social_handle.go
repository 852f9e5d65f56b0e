package models

// SocialHandle stores one social handle per (person, platform).
// Platform is stored lowercased; setting an existing platform overwrites.
type SocialHandle struct {
	PersonID uint   `gorm:"primaryKey;autoIncrement:false" json:"person_id"`
	Platform string `gorm:"primaryKey" json:"platform"`
	Handle   string `gorm:"not null" json:"handle"`
}

// TableName explicitly sets the table name for GORM.
func (SocialHandle) TableName() string {
	return "social_handles"
}
