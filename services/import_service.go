package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
)

// exportPlatforms is the fixed set of social platforms flattened into export
// records.
var exportPlatforms = []string{"instagram", "x", "linkedin"}

// Record is one flat import row: column header → cell value. Headers are
// matched case-insensitively against the synonym table; unrecognized columns
// are ignored.
type Record map[string]string

// ImportOptions controls a bulk import pass.
type ImportOptions struct {
	// DefaultGroup receives newly created people. It is created on first
	// use if absent.
	DefaultGroup string

	// CreateMissing enables creation of people with no existing match;
	// when false, unmatched rows are skipped.
	CreateMissing bool

	// WipeBeforeImport erases all people, social handles and family edges
	// (but not groups) before importing.
	WipeBeforeImport bool
}

// ImportSummary reports what a bulk import pass did.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// columnSynonyms maps normalized column headers to canonical field names.
var columnSynonyms = map[string]string{
	"first name": "first", "first": "first", "firstname": "first", "given name": "first",
	"last name": "last", "last": "last", "lastname": "last", "surname": "last", "family name": "last",
	"nickname": "nickname", "nick": "nickname", "line name": "nickname",
	"honorific": "honorific", "title": "honorific",
	"bio": "bio", "biography": "bio",
	"major":     "major",
	"age":       "age",
	"ethnicity": "ethnicity", "race": "ethnicity",
	"hometown": "hometown", "home town": "hometown",
	"contact": "contact_handle", "contact handle": "contact_handle", "groupme": "contact_handle",
	"phone": "phone", "phone number": "phone", "cell": "phone", "cell phone": "phone", "mobile": "phone",
	"email": "emails", "emails": "emails", "email address": "emails", "e mail": "emails",
	"standing": "standing", "year": "standing", "class standing": "standing", "classification": "standing",
	"shirt size": "shirt_size", "t shirt size": "shirt_size", "tshirt size": "shirt_size",
	"birthday": "birthday", "birthdate": "birthday", "birth date": "birthday", "dob": "birthday", "date of birth": "birthday",
	"lineage": "lineage_note", "lineage note": "lineage_note",
	"personality": "personality_code", "personality code": "personality_code", "personality type": "personality_code", "mbti": "personality_code",
	"love language": "love_language", "love languages": "love_language",
	"fascination advantage": "fascination_advantage", "fascination": "fascination_advantage",
	"notes": "notes", "note": "notes", "comments": "notes",
	"interest": "interest", "interests": "interest", "hobbies": "interest",
}

// normalizeHeader lowercases a column header and collapses separators so
// "Phone_Number", "phone-number" and " Phone  Number " all match the same
// synonym entry.
func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(header)
	return strings.Join(strings.Fields(header), " ")
}

// normalizePhone strips everything but digits; an empty result means the
// value is treated as absent.
func normalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// canonicalize maps a raw record onto canonical field names, trimming values
// and dropping empty cells and unrecognized columns.
func canonicalize(record Record) map[string]string {
	fields := map[string]string{}
	for header, value := range record {
		canonical, ok := columnSynonyms[normalizeHeader(header)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if canonical == "phone" {
			value = normalizePhone(value)
		}
		if value == "" {
			continue
		}
		fields[canonical] = value
	}
	return fields
}

// ImportService reconciles external tabular records against the roster with
// match-or-create semantics, and produces flat export records.
type ImportService struct {
	db       *gorm.DB
	sqlDB    *sql.DB
	groups   repository.GroupRepositoryInterface
	people   repository.PersonRepositoryInterface
	ordering repository.OrderingRepositoryInterface
}

// NewImportService creates a new import service
func NewImportService(
	db *gorm.DB,
	sqlDB *sql.DB,
	groups repository.GroupRepositoryInterface,
	people repository.PersonRepositoryInterface,
	ordering repository.OrderingRepositoryInterface,
) *ImportService {
	return &ImportService{db: db, sqlDB: sqlDB, groups: groups, people: people, ordering: ordering}
}

// Import runs a bulk import pass over the records in order. Rows missing any
// of first name, last name or nickname are skipped silently, as are rows
// whose updates fail (e.g. a nickname collision); a failed import leaves the
// store partially updated and should be re-run.
func (s *ImportService) Import(records []Record, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{}

	if opts.WipeBeforeImport {
		if err := s.wipe(); err != nil {
			return summary, err
		}
	}

	if opts.DefaultGroup == "" {
		opts.DefaultGroup = "Unassigned"
	}

	for i, record := range records {
		fields := canonicalize(record)
		if fields["first"] == "" || fields["last"] == "" || fields["nickname"] == "" {
			summary.Skipped++
			continue
		}

		person, err := s.people.FindByNameOrNickname(fields["first"], fields["last"], fields["nickname"])
		switch {
		case err == nil:
			if err := s.updateExisting(person, fields); err != nil {
				log.Printf("import: skipping row %d (%s): %v", i+1, fields["nickname"], err)
				summary.Skipped++
				continue
			}
			summary.Updated++
		case errors.Is(err, apperrors.ErrNotFound):
			if !opts.CreateMissing {
				summary.Skipped++
				continue
			}
			if err := s.createNew(opts.DefaultGroup, fields); err != nil {
				log.Printf("import: skipping row %d (%s): %v", i+1, fields["nickname"], err)
				summary.Skipped++
				continue
			}
			summary.Created++
		default:
			return summary, err
		}
	}

	if err := s.renormalizeAll(); err != nil {
		return summary, err
	}
	return summary, nil
}

// updateExisting writes only the columns present in the record. Sequence
// number, group membership and display position are never touched here; the
// full name is recomputed by UpdateName whenever first or last changes.
func (s *ImportService) updateExisting(person *models.Person, fields map[string]string) error {
	namePatch := models.NamePatch{}
	if v, ok := fields["first"]; ok {
		namePatch.FirstName = &v
	}
	if v, ok := fields["last"]; ok {
		namePatch.LastName = &v
	}
	if v, ok := fields["honorific"]; ok {
		namePatch.Honorific = &v
	}
	if v, ok := fields["nickname"]; ok && !strings.EqualFold(v, person.Nickname) {
		namePatch.Nickname = &v
	}

	updated, err := s.people.UpdateName(person.Nickname, namePatch)
	if err != nil {
		return err
	}
	return s.people.UpdateProfile(updated.Nickname, profilePatch(fields))
}

// createNew inserts an unmatched record as a new person in the default
// group, creating that group at the end of the display order if needed.
func (s *ImportService) createNew(groupName string, fields map[string]string) error {
	if _, err := s.groups.GetByName(groupName); errors.Is(err, apperrors.ErrNotFound) {
		groups, listErr := s.groups.ListAll()
		if listErr != nil {
			return listErr
		}
		orderKey := 0
		for _, g := range groups {
			if g.OrderKey >= orderKey {
				orderKey = g.OrderKey + 1
			}
		}
		if _, err := s.groups.Create(groupName, orderKey); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var bio *string
	if v, ok := fields["bio"]; ok {
		bio = &v
	}
	person, err := s.people.Create(groupName, fields["first"], fields["last"], fields["nickname"], bio)
	if err != nil {
		return err
	}

	if v, ok := fields["honorific"]; ok {
		if _, err := s.people.UpdateName(person.Nickname, models.NamePatch{Honorific: &v}); err != nil {
			return err
		}
	}
	return s.people.UpdateProfile(person.Nickname, profilePatch(fields))
}

// profilePatch lifts the canonical profile columns present in the record
// into a patch; absent columns stay nil and are left untouched.
func profilePatch(fields map[string]string) models.ProfilePatch {
	patch := models.ProfilePatch{}
	slot := func(key string, dst **string) {
		if v, ok := fields[key]; ok {
			*dst = &v
		}
	}
	slot("bio", &patch.Bio)
	slot("major", &patch.Major)
	slot("age", &patch.Age)
	slot("ethnicity", &patch.Ethnicity)
	slot("hometown", &patch.Hometown)
	slot("contact_handle", &patch.ContactHandle)
	slot("phone", &patch.Phone)
	slot("emails", &patch.Emails)
	slot("standing", &patch.Standing)
	slot("shirt_size", &patch.ShirtSize)
	slot("birthday", &patch.Birthday)
	slot("lineage_note", &patch.LineageNote)
	slot("personality_code", &patch.PersonalityCode)
	slot("love_language", &patch.LoveLanguage)
	slot("fascination_advantage", &patch.FascinationAdvantage)
	slot("notes", &patch.Notes)
	slot("interest", &patch.Interest)
	return patch
}

// wipe erases all people, social handles and family edges. Groups and the
// excluded number set survive. The allocator reads its maximum from the
// people table, so a full reset also restarts numbering from the floor.
func (s *ImportService) wipe() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SocialHandle{}).Error; err != nil {
			return fmt.Errorf("failed to wipe social handles: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.FamilyEdge{}).Error; err != nil {
			return fmt.Errorf("failed to wipe family edges: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Person{}).Error; err != nil {
			return fmt.Errorf("failed to wipe people: %w", err)
		}
		return nil
	})
}

// renormalizeAll compacts display positions for every group after a bulk
// pass.
func (s *ImportService) renormalizeAll() error {
	groups, err := s.groups.ListAll()
	if err != nil {
		return err
	}
	for _, group := range groups {
		if err := s.ordering.Renormalize(group.Name); err != nil {
			return err
		}
	}
	return nil
}

// Export produces one flat record per person ordered by sequence number
// ascending, including the resolved parent nickname and handles for the
// recognized platforms.
func (s *ImportService) Export() ([]database.ExportRow, error) {
	return database.ExportRows(s.sqlDB, exportPlatforms)
}
