package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// RosterRow is one line of a roster listing. Member fields are NULL (nil)
// when the row is the placeholder a LEFT JOIN produces for a group with no
// people, so the presentation layer can still render an empty-group banner.
type RosterRow struct {
	GroupName      string  `json:"group_name"`
	FirstName      *string `json:"first_name"`
	Nickname       *string `json:"nickname"`
	LastName       *string `json:"last_name"`
	SequenceNumber *int64  `json:"sequence_number"`
	Honorific      *string `json:"honorific"`
}

// FullRoster returns every group's members ordered by group order key, then
// display position within the group. Groups with no members contribute a
// single row with NULL member fields.
func FullRoster(db *sql.DB) ([]RosterRow, error) {
	queryBuilder := psql.Select(
		"g.name AS group_name",
		"p.first_name", "p.nickname", "p.last_name",
		"p.sequence_number", "p.honorific").
		From("groups g").
		LeftJoin("people p ON p.group_id = g.id").
		OrderBy("g.order_key ASC", "p.position ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FullRoster: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute FullRoster query: %w", err)
	}
	defer rows.Close()

	return scanRosterRows(rows)
}

// GroupRoster returns one group's members ordered by display position.
// The result is empty when the group does not exist or has no members;
// distinguishing those cases is the caller's job.
func GroupRoster(db *sql.DB, groupName string) ([]RosterRow, error) {
	queryBuilder := psql.Select(
		"g.name AS group_name",
		"p.first_name", "p.nickname", "p.last_name",
		"p.sequence_number", "p.honorific").
		From("people p").
		Join("groups g ON p.group_id = g.id").
		Where(sq.Eq{"g.name": groupName}).
		OrderBy("p.position ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GroupRoster: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GroupRoster query for %s: %w", groupName, err)
	}
	defer rows.Close()

	return scanRosterRows(rows)
}

func scanRosterRows(rows *sql.Rows) ([]RosterRow, error) {
	roster := []RosterRow{}
	for rows.Next() {
		var r RosterRow
		if err := rows.Scan(&r.GroupName, &r.FirstName, &r.Nickname, &r.LastName,
			&r.SequenceNumber, &r.Honorific); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		roster = append(roster, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}
	return roster, nil
}

// ExportRow is one flat export record per person, ordered by sequence number.
type ExportRow struct {
	PersonID       uint              `json:"-"`
	UUID           string            `json:"uuid"`
	SequenceNumber *int64            `json:"sequence_number"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Nickname       string            `json:"nickname"`
	FullName       string            `json:"full_name"`
	Honorific      string            `json:"honorific"`
	GroupName      string            `json:"group_name"`
	Bio            *string           `json:"bio,omitempty"`
	Major          *string           `json:"major,omitempty"`
	Age            *string           `json:"age,omitempty"`
	Ethnicity      *string           `json:"ethnicity,omitempty"`
	Hometown       *string           `json:"hometown,omitempty"`
	ContactHandle  *string           `json:"contact_handle,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Emails         *string           `json:"emails,omitempty"`
	Standing       *string           `json:"standing,omitempty"`
	ShirtSize      *string           `json:"shirt_size,omitempty"`
	Birthday       *string           `json:"birthday,omitempty"`
	ParentNickname *string           `json:"parent_nickname,omitempty"`
	Socials        map[string]string `json:"socials"`
}

// ExportRows returns one flat record per person ordered by sequence number
// ascending, with the parent nickname resolved through the family edge and
// social handles flattened for the given platforms only.
func ExportRows(db *sql.DB, platforms []string) ([]ExportRow, error) {
	queryBuilder := psql.Select(
		"p.id", "p.uuid", "p.sequence_number",
		"p.first_name", "p.last_name", "p.nickname", "p.full_name", "p.honorific",
		"g.name AS group_name", "p.bio",
		"p.major", "p.age", "p.ethnicity", "p.hometown", "p.contact_handle",
		"p.phone", "p.emails", "p.standing", "p.shirt_size", "p.birthday",
		"parent.nickname AS parent_nickname").
		From("people p").
		Join("groups g ON p.group_id = g.id").
		LeftJoin("family_edges f ON f.person_id = p.id").
		LeftJoin("people parent ON parent.id = f.parent_id").
		OrderBy("p.sequence_number ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ExportRows: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ExportRows query: %w", err)
	}
	defer rows.Close()

	exports := []ExportRow{}
	for rows.Next() {
		var e ExportRow
		if err := rows.Scan(&e.PersonID, &e.UUID, &e.SequenceNumber,
			&e.FirstName, &e.LastName, &e.Nickname, &e.FullName, &e.Honorific,
			&e.GroupName, &e.Bio,
			&e.Major, &e.Age, &e.Ethnicity, &e.Hometown, &e.ContactHandle,
			&e.Phone, &e.Emails, &e.Standing, &e.ShirtSize, &e.Birthday,
			&e.ParentNickname); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		e.Socials = map[string]string{}
		exports = append(exports, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	if len(exports) == 0 || len(platforms) == 0 {
		return exports, nil
	}

	socialBuilder := psql.Select("person_id", "platform", "handle").
		From("social_handles").
		Where(sq.Eq{"platform": platforms})

	sqlStr, args, err = socialBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for export socials: %w", err)
	}

	socialRows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute export socials query: %w", err)
	}
	defer socialRows.Close()

	byPerson := make(map[uint]map[string]string)
	for socialRows.Next() {
		var personID uint
		var platform, handle string
		if err := socialRows.Scan(&personID, &platform, &handle); err != nil {
			return nil, fmt.Errorf("failed to scan export social row: %w", err)
		}
		if byPerson[personID] == nil {
			byPerson[personID] = map[string]string{}
		}
		byPerson[personID][platform] = handle
	}
	if err := socialRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export social rows: %w", err)
	}

	for i := range exports {
		if socials, ok := byPerson[exports[i].PersonID]; ok {
			exports[i].Socials = socials
		}
	}

	return exports, nil
}
