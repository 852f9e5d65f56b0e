package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "phone number", normalizeHeader(" Phone_Number "))
	assert.Equal(t, "t shirt size", normalizeHeader("T-Shirt Size"))
	assert.Equal(t, "e mail", normalizeHeader("E-Mail"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", normalizePhone("(555) 123-4567"))
	assert.Equal(t, "", normalizePhone("n/a"))
}

func TestImportCreatesMissingPeople(t *testing.T) {
	env := newTestEnv(t)

	records := []Record{
		{"First Name": "Jane", "Last Name": "Doe", "Nickname": "JD", "Phone_Number": "(555) 123-4567", "T-Shirt Size": "M"},
		{"first": "Alex", "last": "Best", "nick": "AB", "E-Mail": "alex@example.com"},
		{"First Name": "NoNick", "Last Name": "Row"}, // missing nickname, skipped
	}

	summary, err := env.importer.Import(records, ImportOptions{DefaultGroup: "Imports", CreateMissing: true})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)

	// default group was created on first use
	_, err = env.groups.GetByName("Imports")
	require.NoError(t, err)

	jd, err := env.people.GetByNickname("JD")
	require.NoError(t, err)
	require.NotNil(t, jd.SequenceNumber)
	assert.Equal(t, int64(2), *jd.SequenceNumber)
	require.NotNil(t, jd.Phone)
	assert.Equal(t, "5551234567", *jd.Phone)
	require.NotNil(t, jd.ShirtSize)
	assert.Equal(t, "M", *jd.ShirtSize)

	ab, err := env.people.GetByNickname("AB")
	require.NoError(t, err)
	require.NotNil(t, ab.Emails)
	assert.Equal(t, "alex@example.com", *ab.Emails)
}

func TestImportCreateMissingDisabled(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.groups.Create("Alpha", 0)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Jane", "Doe", "JD", nil)
	require.NoError(t, err)

	records := []Record{
		{"first": "Jane", "last": "Doe", "nickname": "JD", "major": "Physics"},
		{"first": "New", "last": "Person", "nickname": "NP"},
	}

	summary, err := env.importer.Import(records, ImportOptions{CreateMissing: false})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)

	// total person count never grows beyond pre-import matches
	var count int64
	require.NoError(t, env.db.Table("people").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestImportUpdatesOnlyPresentColumns(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.groups.Create("Alpha", 0)
	require.NoError(t, err)
	created, err := env.people.Create("Alpha", "Jane", "Doe", "JD", nil)
	require.NoError(t, err)
	require.NoError(t, env.people.UpdateProfile("JD", profilePatch(map[string]string{"hometown": "Springfield"})))

	// matched by (first, last) pair despite the record carrying a new nickname
	records := []Record{
		{"first": "jane", "last": "doe", "nickname": "Jaydee", "major": "Physics"},
	}
	summary, err := env.importer.Import(records, ImportOptions{CreateMissing: false})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	// the present nickname column was applied like any other
	jd, err := env.people.GetByNickname("Jaydee")
	require.NoError(t, err)
	// untouched column survives, new column lands
	require.NotNil(t, jd.Hometown)
	assert.Equal(t, "Springfield", *jd.Hometown)
	require.NotNil(t, jd.Major)
	assert.Equal(t, "Physics", *jd.Major)

	// sequence number, group and position are never touched on update
	assert.Equal(t, *created.SequenceNumber, *jd.SequenceNumber)
	assert.Equal(t, created.GroupID, jd.GroupID)
	assert.Equal(t, created.Position, jd.Position)
}

func TestImportWipeErasesPeopleButNotGroups(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.groups.Create("Alpha", 0)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Jane", "Doe", "JD", nil)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Alex", "Best", "AB", nil)
	require.NoError(t, err)
	require.NoError(t, env.socials.Set("JD", "instagram", "@jane"))
	require.NoError(t, env.family.SetParent("AB", strPtr("JD")))

	records := []Record{
		{"first": "Zoe", "last": "Zimm", "nickname": "ZZ"},
	}
	summary, err := env.importer.Import(records, ImportOptions{
		DefaultGroup:     "Alpha",
		CreateMissing:    true,
		WipeBeforeImport: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	var people, groups, handles, edges int64
	require.NoError(t, env.db.Table("people").Count(&people).Error)
	require.NoError(t, env.db.Table("groups").Count(&groups).Error)
	require.NoError(t, env.db.Table("social_handles").Count(&handles).Error)
	require.NoError(t, env.db.Table("family_edges").Count(&edges).Error)
	assert.Equal(t, int64(1), people)
	assert.Equal(t, int64(1), groups)
	assert.Equal(t, int64(0), handles)
	assert.Equal(t, int64(0), edges)
}

func TestImportRenormalizesPositions(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.groups.Create("Alpha", 0)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Jane", "Doe", "JD", nil)
	require.NoError(t, err)

	// leave a gap the way ad hoc edits might
	require.NoError(t, env.db.Table("people").Where("nickname = ?", "JD").Update("position", 9.5).Error)

	records := []Record{
		{"first": "Alex", "last": "Best", "nickname": "AB"},
	}
	_, err = env.importer.Import(records, ImportOptions{DefaultGroup: "Alpha", CreateMissing: true})
	require.NoError(t, err)

	var vals []float64
	require.NoError(t, env.db.Table("people").Order("position ASC").Pluck("position", &vals).Error)
	assert.Equal(t, []float64{1, 2}, vals)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.groups.Create("Alpha", 0)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Jane", "Doe", "JD", nil)
	require.NoError(t, err)
	_, err = env.people.Create("Alpha", "Alex", "Best", "AB", nil)
	require.NoError(t, err)

	require.NoError(t, env.family.SetParent("AB", strPtr("JD")))
	require.NoError(t, env.socials.Set("JD", "instagram", "@jane"))
	require.NoError(t, env.socials.Set("JD", "myspace", "jane4ever")) // unrecognized platform

	rows, err := env.importer.Export()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordered by sequence number ascending
	assert.Equal(t, "JD", rows[0].Nickname)
	assert.Equal(t, "AB", rows[1].Nickname)
	assert.Equal(t, "Alpha", rows[0].GroupName)

	// parent nickname resolved through the family edge
	assert.Nil(t, rows[0].ParentNickname)
	require.NotNil(t, rows[1].ParentNickname)
	assert.Equal(t, "JD", *rows[1].ParentNickname)

	// only recognized platforms are flattened
	assert.Equal(t, map[string]string{"instagram": "@jane"}, rows[0].Socials)
	assert.Empty(t, rows[1].Socials)
}
