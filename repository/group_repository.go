package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/facette/natsort"
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// GroupRepository handles database operations for Group entities
type GroupRepository struct {
	DB *gorm.DB
}

// NewGroupRepository creates a new instance of GroupRepository
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// Create creates a new group with the given display order key
func (r *GroupRepository) Create(name string, orderKey int) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is empty: %w", apperrors.ErrValidation)
	}

	now := time.Now().Unix()
	group := models.Group{Name: name, OrderKey: orderKey, CreatedAt: now, UpdatedAt: now}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Group{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing group %s: %w", name, err)
		}
		if count > 0 {
			return fmt.Errorf("group %s already exists: %w", name, apperrors.ErrDuplicateKey)
		}
		if err := tx.Create(&group).Error; err != nil {
			return fmt.Errorf("failed to create group %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByName retrieves a group by its exact name
func (r *GroupRepository) GetByName(name string) (*models.Group, error) {
	var group models.Group
	err := r.DB.Where("name = ?", name).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %s: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group %s: %w", name, err)
	}
	return &group, nil
}

// ListAll returns all groups ordered by order key ascending. Groups sharing
// an order key are tie-broken by natural name order, which keeps the result
// stable within a single call.
func (r *GroupRepository) ListAll() ([]models.Group, error) {
	var groups []models.Group
	err := r.DB.Order("order_key ASC").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].OrderKey != groups[j].OrderKey {
			return groups[i].OrderKey < groups[j].OrderKey
		}
		return natsort.Compare(groups[i].Name, groups[j].Name)
	})
	return groups, nil
}

// Delete removes a group and everything under it: social handles and family
// edges of its members (as either side of an edge), then the members, then
// the group row. Deleting an absent group is a no-op.
func (r *GroupRepository) Delete(name string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		err := tx.Where("name = ?", name).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up group %s for deletion: %w", name, err)
		}

		var memberIDs []uint
		if err := tx.Model(&models.Person{}).Where("group_id = ?", group.ID).Pluck("id", &memberIDs).Error; err != nil {
			return fmt.Errorf("failed to list members of group %s: %w", name, err)
		}

		if len(memberIDs) > 0 {
			if err := tx.Where("person_id IN ?", memberIDs).Delete(&models.SocialHandle{}).Error; err != nil {
				return fmt.Errorf("failed to delete social handles for group %s: %w", name, err)
			}
			if err := tx.Where("person_id IN ? OR parent_id IN ?", memberIDs, memberIDs).Delete(&models.FamilyEdge{}).Error; err != nil {
				return fmt.Errorf("failed to delete family edges for group %s: %w", name, err)
			}
			if err := tx.Where("group_id = ?", group.ID).Delete(&models.Person{}).Error; err != nil {
				return fmt.Errorf("failed to delete members of group %s: %w", name, err)
			}
		}

		if err := tx.Delete(&models.Group{}, group.ID).Error; err != nil {
			return fmt.Errorf("failed to delete group %s: %w", name, err)
		}
		return nil
	})
}
