package models

// ExcludedNumber is a sequence number the allocator must never assign
// ("blackballed"). The exclusion is independent of whether the number was
// ever assigned; removing a row only makes the value eligible again going
// forward from the current maximum.
type ExcludedNumber struct {
	SequenceNumber int64 `gorm:"primaryKey;autoIncrement:false" json:"sequence_number"`
}

// TableName explicitly sets the table name for GORM.
func (ExcludedNumber) TableName() string {
	return "excluded_numbers"
}
