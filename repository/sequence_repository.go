package repository

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// SequenceRepository handles sequence number allocation and the excluded
// ("blackballed") number set
type SequenceRepository struct {
	DB *gorm.DB

	// Floor is the value allocation starts above when no number has ever
	// been assigned; with the default floor of 1 the first person gets 2.
	Floor int64
}

// NewSequenceRepository creates a new instance of SequenceRepository
func NewSequenceRepository(db *gorm.DB, floor int64) *SequenceRepository {
	return &SequenceRepository{DB: db, Floor: floor}
}

// NextSequenceNumber returns the smallest integer strictly greater than the
// current maximum assigned sequence number that is not excluded. This is not
// a gap-fill allocator: numbers freed by deletion are never handed out again,
// and an exclusion below the current maximum has no retroactive effect.
//
// The read-then-write span over (max, excluded set) must be serialized by the
// caller; tx is expected to be the same transaction that inserts the person
// consuming the returned number.
func (r *SequenceRepository) NextSequenceNumber(tx *gorm.DB) (int64, error) {
	var maxSeq sql.NullInt64
	err := tx.Model(&models.Person{}).Select("MAX(sequence_number)").Scan(&maxSeq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max sequence number: %w", err)
	}

	last := r.Floor
	if maxSeq.Valid && maxSeq.Int64 > last {
		last = maxSeq.Int64
	}

	var excludedList []int64
	err = tx.Model(&models.ExcludedNumber{}).Pluck("sequence_number", &excludedList).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load excluded numbers: %w", err)
	}
	excluded := make(map[int64]bool, len(excludedList))
	for _, n := range excludedList {
		excluded[n] = true
	}

	next := last + 1
	for excluded[next] {
		next++
	}
	return next, nil
}

// Exclude permanently withholds a sequence number from future allocation.
// Excluding an already-excluded number is a no-op.
func (r *SequenceRepository) Exclude(number int64) error {
	if number <= 0 {
		return fmt.Errorf("sequence number %d is not a positive integer: %w", number, apperrors.ErrInvalidOperation)
	}
	err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ExcludedNumber{SequenceNumber: number}).Error
	if err != nil {
		return fmt.Errorf("failed to exclude sequence number %d: %w", number, err)
	}
	return nil
}

// Unexclude removes a number from the excluded set; no-op if absent. Note
// that a number the allocator already skipped stays unassigned forever, since
// allocation only moves forward from the maximum.
func (r *SequenceRepository) Unexclude(number int64) error {
	err := r.DB.Delete(&models.ExcludedNumber{}, "sequence_number = ?", number).Error
	if err != nil {
		return fmt.Errorf("failed to unexclude sequence number %d: %w", number, err)
	}
	return nil
}

// ListExcluded returns the excluded numbers in ascending order.
func (r *SequenceRepository) ListExcluded() ([]int64, error) {
	var numbers []int64
	err := r.DB.Model(&models.ExcludedNumber{}).
		Order("sequence_number ASC").
		Pluck("sequence_number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list excluded numbers: %w", err)
	}
	return numbers, nil
}
