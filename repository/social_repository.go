package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// SocialRepository stores one handle per (person, platform). Platforms are
// normalized to lowercase; setting an existing platform overwrites.
type SocialRepository struct {
	DB *gorm.DB
}

// NewSocialRepository creates a new instance of SocialRepository
func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{DB: db}
}

// Set upserts a person's handle for a platform.
func (r *SocialRepository) Set(nickname, platform, handle string) error {
	platform = strings.ToLower(strings.TrimSpace(platform))
	handle = strings.TrimSpace(handle)
	if platform == "" || handle == "" {
		return fmt.Errorf("platform and handle are required: %w", apperrors.ErrValidation)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if err != nil {
			return err
		}
		row := models.SocialHandle{PersonID: person.ID, Platform: platform, Handle: handle}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "person_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{"handle"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to set %s handle for person ID %d: %w", platform, person.ID, err)
		}
		return nil
	})
}

// Remove deletes a person's handle for a platform; no-op if the person or
// the handle is absent.
func (r *SocialRepository) Remove(nickname, platform string) error {
	platform = strings.ToLower(strings.TrimSpace(platform))

	return r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		err = tx.Where("person_id = ? AND platform = ?", person.ID, platform).
			Delete(&models.SocialHandle{}).Error
		if err != nil {
			return fmt.Errorf("failed to remove %s handle for person ID %d: %w", platform, person.ID, err)
		}
		return nil
	})
}

// ListByPersonID returns a person's handles as a platform → handle map.
func (r *SocialRepository) ListByPersonID(personID uint) (map[string]string, error) {
	var rows []models.SocialHandle
	err := r.DB.Where("person_id = ?", personID).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list social handles for person ID %d: %w", personID, err)
	}
	handles := make(map[string]string, len(rows))
	for _, row := range rows {
		handles[row.Platform] = row.Handle
	}
	return handles, nil
}
