package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// OrderingRepository maintains the per-group display order. Display positions
// are real-valued sort keys with no identity meaning; sequence numbers are
// never touched by any operation here.
type OrderingRepository struct {
	DB *gorm.DB
}

// NewOrderingRepository creates a new instance of OrderingRepository
func NewOrderingRepository(db *gorm.DB) *OrderingRepository {
	return &OrderingRepository{DB: db}
}

// Swap exchanges the display positions of two people identified by sequence
// number. Both must belong to the same group. Positions are renormalized to
// dense integers before the transaction commits.
func (r *OrderingRepository) Swap(seqA, seqB int64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		a, err := personBySequence(tx, seqA)
		if err != nil {
			return err
		}
		b, err := personBySequence(tx, seqB)
		if err != nil {
			return err
		}
		if a.GroupID != b.GroupID {
			return fmt.Errorf("people #%d and #%d are in different groups: %w", seqA, seqB, apperrors.ErrInvalidOperation)
		}

		if err := tx.Model(&models.Person{}).Where("id = ?", a.ID).Update("position", b.Position).Error; err != nil {
			return fmt.Errorf("failed to move person #%d: %w", seqA, err)
		}
		if err := tx.Model(&models.Person{}).Where("id = ?", b.ID).Update("position", a.Position).Error; err != nil {
			return fmt.Errorf("failed to move person #%d: %w", seqB, err)
		}
		return renormalizeGroup(tx, a.GroupID)
	})
}

// MoveAfter places one person immediately after another in the same group by
// giving them a fractional position between the target and its successor,
// then renormalizes the group. Other rows are not shifted before the
// renormalize pass.
func (r *OrderingRepository) MoveAfter(seq, targetSeq int64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		moving, err := personBySequence(tx, seq)
		if err != nil {
			return err
		}
		target, err := personBySequence(tx, targetSeq)
		if err != nil {
			return err
		}
		if moving.GroupID != target.GroupID {
			return fmt.Errorf("people #%d and #%d are in different groups: %w", seq, targetSeq, apperrors.ErrInvalidOperation)
		}

		if err := tx.Model(&models.Person{}).Where("id = ?", moving.ID).
			Update("position", target.Position+0.5).Error; err != nil {
			return fmt.Errorf("failed to move person #%d after #%d: %w", seq, targetSeq, err)
		}
		return renormalizeGroup(tx, moving.GroupID)
	})
}

// Renormalize reassigns dense integer positions 1..N to the named group's
// members, ordered by current position with creation order (row ID) breaking
// ties.
func (r *OrderingRepository) Renormalize(groupName string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		err := tx.Where("name = ?", groupName).First(&group).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("group %s: %w", groupName, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to look up group %s: %w", groupName, err)
		}
		return renormalizeGroup(tx, group.ID)
	})
}

// renormalizeGroup rewrites positions as 1..N inside tx. It runs eagerly
// after every reorder so fractional keys never accumulate.
func renormalizeGroup(tx *gorm.DB, groupID uint) error {
	var people []models.Person
	err := tx.Where("group_id = ?", groupID).Order("position ASC, id ASC").Find(&people).Error
	if err != nil {
		return fmt.Errorf("failed to list group %d for renormalize: %w", groupID, err)
	}
	for i := range people {
		want := float64(i + 1)
		if people[i].Position == want {
			continue
		}
		if err := tx.Model(&models.Person{}).Where("id = ?", people[i].ID).Update("position", want).Error; err != nil {
			return fmt.Errorf("failed to renormalize position for person ID %d: %w", people[i].ID, err)
		}
	}
	return nil
}
