package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

// allocMu serializes the read-then-write span of sequence number allocation
// within this process so concurrent creates cannot race to the same number.
var allocMu sync.Mutex

// PersonRepository handles database operations for Person entities
type PersonRepository struct {
	DB        *gorm.DB
	Sequences *SequenceRepository
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB, sequences *SequenceRepository) *PersonRepository {
	return &PersonRepository{DB: db, Sequences: sequences}
}

// personByNickname resolves a person by case-insensitive nickname inside tx.
func personByNickname(tx *gorm.DB, nickname string) (*models.Person, error) {
	var person models.Person
	err := tx.Where("LOWER(nickname) = LOWER(?)", strings.TrimSpace(nickname)).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %q: %w", nickname, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up person %q: %w", nickname, err)
	}
	return &person, nil
}

// personBySequence resolves a person by sequence number inside tx.
func personBySequence(tx *gorm.DB, seq int64) (*models.Person, error) {
	var person models.Person
	err := tx.Where("sequence_number = ?", seq).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person #%d: %w", seq, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up person #%d: %w", seq, err)
	}
	return &person, nil
}

// Create adds a person to the named group, assigning the next display
// position in that group and the next global sequence number. Name fields are
// trimmed; empty required fields fail validation. The nickname must be unique
// case-insensitively across the whole roster.
func (r *PersonRepository) Create(groupName, firstName, lastName, nickname string, bio *string) (*models.Person, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	nickname = strings.TrimSpace(nickname)
	if firstName == "" || lastName == "" || nickname == "" {
		return nil, fmt.Errorf("first name, last name and nickname are required: %w", apperrors.ErrValidation)
	}

	allocMu.Lock()
	defer allocMu.Unlock()

	var person models.Person
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		err := tx.Where("name = ?", groupName).First(&group).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("group %s: %w", groupName, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to look up group %s: %w", groupName, err)
		}

		var count int64
		if err := tx.Model(&models.Person{}).Where("LOWER(nickname) = LOWER(?)", nickname).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check nickname %q: %w", nickname, err)
		}
		if count > 0 {
			return fmt.Errorf("nickname %q is already taken: %w", nickname, apperrors.ErrDuplicateKey)
		}

		var maxPos float64
		if err := tx.Model(&models.Person{}).Where("group_id = ?", group.ID).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
			return fmt.Errorf("failed to read max position in group %s: %w", groupName, err)
		}

		seq, err := r.Sequences.NextSequenceNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now().Unix()
		person = models.Person{
			UUID:           uuid.NewString(),
			GroupID:        group.ID,
			FirstName:      firstName,
			LastName:       lastName,
			Nickname:       nickname,
			FullName:       firstName + " " + lastName,
			Honorific:      "Mr.",
			Bio:            bio,
			SequenceNumber: &seq,
			Position:       maxPos + 1,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create(&person).Error; err != nil {
			return fmt.Errorf("failed to create person %q: %w", nickname, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// GetByNickname retrieves a person by case-insensitive nickname, preloading
// social handles.
func (r *PersonRepository) GetByNickname(nickname string) (*models.Person, error) {
	var person models.Person
	err := r.DB.Preload("Socials").
		Where("LOWER(nickname) = LOWER(?)", strings.TrimSpace(nickname)).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %q: %w", nickname, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get person %q: %w", nickname, err)
	}
	return &person, nil
}

// Delete removes a person by case-insensitive nickname, cascading to their
// social handles and any family edges referencing them as either side.
// Deleting an absent person is a no-op.
func (r *PersonRepository) Delete(nickname string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return deletePeople(tx, []uint{person.ID})
	})
}

// deletePeople removes the given people and their dependent rows inside tx.
func deletePeople(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("person_id IN ?", ids).Delete(&models.SocialHandle{}).Error; err != nil {
		return fmt.Errorf("failed to delete social handles: %w", err)
	}
	if err := tx.Where("person_id IN ? OR parent_id IN ?", ids, ids).Delete(&models.FamilyEdge{}).Error; err != nil {
		return fmt.Errorf("failed to delete family edges: %w", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Person{}).Error; err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}

// criteriaQuery builds the OR filter for FindOne/FindAll. Providing more
// criteria broadens the match rather than narrowing it.
func criteriaQuery(tx *gorm.DB, criteria models.FindCriteria) *gorm.DB {
	conds := []string{}
	args := []interface{}{}
	if criteria.SequenceNumber != nil {
		conds = append(conds, "sequence_number = ?")
		args = append(args, *criteria.SequenceNumber)
	}
	if criteria.FirstName != nil {
		conds = append(conds, "LOWER(first_name) = LOWER(?)")
		args = append(args, strings.TrimSpace(*criteria.FirstName))
	}
	if criteria.LastName != nil {
		conds = append(conds, "LOWER(last_name) = LOWER(?)")
		args = append(args, strings.TrimSpace(*criteria.LastName))
	}
	if criteria.Nickname != nil {
		conds = append(conds, "LOWER(nickname) = LOWER(?)")
		args = append(args, strings.TrimSpace(*criteria.Nickname))
	}
	return tx.Where(strings.Join(conds, " OR "), args...)
}

// FindOne returns a single person matching any of the provided criteria.
// When several people match, which one is returned is unspecified.
func (r *PersonRepository) FindOne(criteria models.FindCriteria) (*models.Person, error) {
	if criteria.IsEmpty() {
		return nil, fmt.Errorf("no lookup criteria provided: %w", apperrors.ErrInvalidOperation)
	}
	var person models.Person
	err := criteriaQuery(r.DB.Model(&models.Person{}), criteria).Take(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no matching person: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find person: %w", err)
	}
	return &person, nil
}

// FindAll returns every person matching any of the provided criteria,
// ordered by sequence number ascending.
func (r *PersonRepository) FindAll(criteria models.FindCriteria) ([]models.Person, error) {
	if criteria.IsEmpty() {
		return nil, fmt.Errorf("no lookup criteria provided: %w", apperrors.ErrInvalidOperation)
	}
	var people []models.Person
	err := criteriaQuery(r.DB.Model(&models.Person{}), criteria).
		Order("sequence_number ASC").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find people: %w", err)
	}
	return people, nil
}

// FindByNameOrNickname matches a person by case-insensitive nickname or by
// case-insensitive (first, last) pair. This is the bulk import match rule.
func (r *PersonRepository) FindByNameOrNickname(firstName, lastName, nickname string) (*models.Person, error) {
	var person models.Person
	err := r.DB.
		Where("LOWER(nickname) = LOWER(?) OR (LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?))",
			strings.TrimSpace(nickname), strings.TrimSpace(firstName), strings.TrimSpace(lastName)).
		Take(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no matching person: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to match person: %w", err)
	}
	return &person, nil
}

// UpdateName applies a partial update to a person's naming fields. The
// derived full name is recomputed when first or last name changes. Renaming
// the nickname changes future lookups only; family edges and social handles
// are keyed on the internal ID and survive untouched.
func (r *PersonRepository) UpdateName(nickname string, patch models.NamePatch) (*models.Person, error) {
	var updated models.Person
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		nameChanged := false
		if patch.FirstName != nil {
			v := strings.TrimSpace(*patch.FirstName)
			if v == "" {
				return fmt.Errorf("first name is empty: %w", apperrors.ErrValidation)
			}
			person.FirstName = v
			updates["first_name"] = v
			nameChanged = true
		}
		if patch.LastName != nil {
			v := strings.TrimSpace(*patch.LastName)
			if v == "" {
				return fmt.Errorf("last name is empty: %w", apperrors.ErrValidation)
			}
			person.LastName = v
			updates["last_name"] = v
			nameChanged = true
		}
		if patch.Nickname != nil {
			v := strings.TrimSpace(*patch.Nickname)
			if v == "" {
				return fmt.Errorf("nickname is empty: %w", apperrors.ErrValidation)
			}
			var count int64
			if err := tx.Model(&models.Person{}).
				Where("LOWER(nickname) = LOWER(?) AND id <> ?", v, person.ID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check nickname %q: %w", v, err)
			}
			if count > 0 {
				return fmt.Errorf("nickname %q is already taken: %w", v, apperrors.ErrDuplicateKey)
			}
			updates["nickname"] = v
		}
		if patch.Honorific != nil {
			v := strings.TrimSpace(*patch.Honorific)
			if v == "" {
				return fmt.Errorf("honorific is empty: %w", apperrors.ErrValidation)
			}
			updates["honorific"] = v
		}
		if nameChanged {
			updates["full_name"] = person.FirstName + " " + person.LastName
		}

		if len(updates) == 0 {
			updated = *person
			return nil
		}
		updates["updated_at"] = time.Now().Unix()
		if err := tx.Model(&models.Person{}).Where("id = ?", person.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update name for person ID %d: %w", person.ID, err)
		}
		return tx.First(&updated, person.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateProfile applies a partial update to a person's profile fields. Only
// non-nil patch slots are written; fields cannot be cleared through this
// call.
func (r *PersonRepository) UpdateProfile(nickname string, patch models.ProfilePatch) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		person, err := personByNickname(tx, nickname)
		if err != nil {
			return err
		}
		updates := profileUpdates(patch)
		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = time.Now().Unix()
		if err := tx.Model(&models.Person{}).Where("id = ?", person.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update profile for person ID %d: %w", person.ID, err)
		}
		return nil
	})
}

// profileUpdates flattens the non-nil slots of a ProfilePatch into a column
// update map.
func profileUpdates(patch models.ProfilePatch) map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	set("bio", patch.Bio)
	set("major", patch.Major)
	set("age", patch.Age)
	set("ethnicity", patch.Ethnicity)
	set("hometown", patch.Hometown)
	set("contact_handle", patch.ContactHandle)
	set("phone", patch.Phone)
	set("emails", patch.Emails)
	set("standing", patch.Standing)
	set("shirt_size", patch.ShirtSize)
	set("birthday", patch.Birthday)
	set("lineage_note", patch.LineageNote)
	set("personality_code", patch.PersonalityCode)
	set("love_language", patch.LoveLanguage)
	set("fascination_advantage", patch.FascinationAdvantage)
	set("notes", patch.Notes)
	set("interest", patch.Interest)
	return updates
}
