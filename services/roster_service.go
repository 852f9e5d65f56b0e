package services

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
)

// RosterService assembles the read-side views the command front-end renders:
// full and per-group rosters, and the member "card" combining a person with
// their group, socials and immediate family.
type RosterService struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	groups  repository.GroupRepositoryInterface
	people  repository.PersonRepositoryInterface
	family  repository.FamilyRepositoryInterface
	socials repository.SocialRepositoryInterface
}

// NewRosterService creates a new roster service
func NewRosterService(
	db *gorm.DB,
	sqlDB *sql.DB,
	groups repository.GroupRepositoryInterface,
	people repository.PersonRepositoryInterface,
	family repository.FamilyRepositoryInterface,
	socials repository.SocialRepositoryInterface,
) *RosterService {
	return &RosterService{
		db:      db,
		sqlDB:   sqlDB,
		groups:  groups,
		people:  people,
		family:  family,
		socials: socials,
	}
}

// FullRoster returns every group's members by display position. Groups with
// no members still appear, as a single row with nil member fields.
func (s *RosterService) FullRoster() ([]database.RosterRow, error) {
	return database.FullRoster(s.sqlDB)
}

// GroupRoster returns one group's members by display position. The group
// must exist; an existing empty group yields an empty list.
func (s *RosterService) GroupRoster(groupName string) ([]database.RosterRow, error) {
	if _, err := s.groups.GetByName(groupName); err != nil {
		return nil, err
	}
	return database.GroupRoster(s.sqlDB, groupName)
}

// MemberCard is the detail view for one person.
type MemberCard struct {
	Person    models.Person     `json:"person"`
	GroupName string            `json:"group_name"`
	Socials   map[string]string `json:"socials"`
	Parent    *string           `json:"parent,omitempty"`
	Children  []string          `json:"children"`
}

// MemberCard looks up a single person by any of the provided criteria and
// assembles their card. When several people match, which card is returned is
// unspecified.
func (s *RosterService) MemberCard(criteria models.FindCriteria) (*MemberCard, error) {
	person, err := s.people.FindOne(criteria)
	if err != nil {
		return nil, err
	}

	var group models.Group
	if err := s.db.First(&group, person.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group for person ID %d: %w", person.ID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load group for person ID %d: %w", person.ID, err)
	}

	socials, err := s.socials.ListByPersonID(person.ID)
	if err != nil {
		return nil, err
	}
	parent, err := s.family.GetParent(person.Nickname)
	if err != nil {
		return nil, err
	}
	children, err := s.family.GetChildren(person.Nickname)
	if err != nil {
		return nil, err
	}

	return &MemberCard{
		Person:    *person,
		GroupName: group.Name,
		Socials:   socials,
		Parent:    parent,
		Children:  children,
	}, nil
}
