package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// FamilyRepository maintains the one-parent family graph. Edges are keyed on
// internal person IDs, so nickname renames never break the graph; nicknames
// are resolved only at this API surface.
type FamilyRepository struct {
	DB *gorm.DB
}

// NewFamilyRepository creates a new instance of FamilyRepository
func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

// SetParent sets or clears a person's parent. Passing nil or an empty string
// clears the relation. Each person stores at most one parent edge; setting
// again overwrites.
func (r *FamilyRepository) SetParent(nickname string, parentNickname *string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if err != nil {
			return err
		}

		var parentID *uint
		if parentNickname != nil && *parentNickname != "" {
			parent, err := personByNickname(tx, *parentNickname)
			if err != nil {
				return err
			}
			if parent.ID == person.ID {
				return fmt.Errorf("person %q cannot be their own parent: %w", nickname, apperrors.ErrInvalidOperation)
			}
			parentID = &parent.ID
		}

		edge := models.FamilyEdge{PersonID: person.ID, ParentID: parentID}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "person_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"parent_id"}),
		}).Create(&edge).Error
		if err != nil {
			return fmt.Errorf("failed to set parent for person ID %d: %w", person.ID, err)
		}
		return nil
	})
}

// GetParent returns the nickname of a person's parent, or nil when the
// person has no parent or does not exist.
func (r *FamilyRepository) GetParent(nickname string) (*string, error) {
	person, err := personByNickname(r.DB, nickname)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var edge models.FamilyEdge
	err = r.DB.Where("person_id = ?", person.ID).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family edge for person ID %d: %w", person.ID, err)
	}
	if edge.ParentID == nil {
		return nil, nil
	}

	var parent models.Person
	if err := r.DB.First(&parent, *edge.ParentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve parent ID %d: %w", *edge.ParentID, err)
	}
	return &parent.Nickname, nil
}

// GetChildren returns the nicknames of everyone whose parent edge points at
// this person. Order follows storage order.
func (r *FamilyRepository) GetChildren(nickname string) ([]string, error) {
	person, err := personByNickname(r.DB, nickname)
	if errors.Is(err, apperrors.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var children []string
	err = r.DB.Model(&models.FamilyEdge{}).
		Joins("JOIN people ON people.id = family_edges.person_id").
		Where("family_edges.parent_id = ?", person.ID).
		Pluck("people.nickname", &children).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list children for person ID %d: %w", person.ID, err)
	}
	return children, nil
}
