package repository

import (
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/models"
)

// GroupRepositoryInterface defines the methods for group data operations
type GroupRepositoryInterface interface {
	Create(name string, orderKey int) (*models.Group, error)
	GetByName(name string) (*models.Group, error)
	ListAll() ([]models.Group, error)
	Delete(name string) error
}

// PersonRepositoryInterface defines the methods for person data operations
type PersonRepositoryInterface interface {
	Create(groupName, firstName, lastName, nickname string, bio *string) (*models.Person, error)
	GetByNickname(nickname string) (*models.Person, error)
	Delete(nickname string) error
	FindOne(criteria models.FindCriteria) (*models.Person, error)
	FindByNameOrNickname(firstName, lastName, nickname string) (*models.Person, error)
	FindAll(criteria models.FindCriteria) ([]models.Person, error)
	UpdateName(nickname string, patch models.NamePatch) (*models.Person, error)
	UpdateProfile(nickname string, patch models.ProfilePatch) error
}

// SequenceRepositoryInterface defines the methods for sequence number
// allocation and the excluded set
type SequenceRepositoryInterface interface {
	NextSequenceNumber(tx *gorm.DB) (int64, error)
	Exclude(number int64) error
	Unexclude(number int64) error
	ListExcluded() ([]int64, error)
}

// OrderingRepositoryInterface defines the methods for display order
// operations
type OrderingRepositoryInterface interface {
	Swap(seqA, seqB int64) error
	MoveAfter(seq, targetSeq int64) error
	Renormalize(groupName string) error
}

// FamilyRepositoryInterface defines the methods for family graph operations
type FamilyRepositoryInterface interface {
	SetParent(nickname string, parentNickname *string) error
	GetParent(nickname string) (*string, error)
	GetChildren(nickname string) ([]string, error)
}

// SocialRepositoryInterface defines the methods for social handle operations
type SocialRepositoryInterface interface {
	Set(nickname, platform, handle string) error
	Remove(nickname, platform string) error
	ListByPersonID(personID uint) (map[string]string, error)
}
