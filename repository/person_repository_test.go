package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/rosterbackend/apperrors"
	"github.com/camden-git/rosterbackend/models"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestCreatePerson(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)

	t.Run("trims name fields and derives full name", func(t *testing.T) {
		person, err := repos.people.Create("Alpha", "  Jane ", " Doe ", " JD ", nil)
		require.NoError(t, err)
		assert.Equal(t, "Jane", person.FirstName)
		assert.Equal(t, "Doe", person.LastName)
		assert.Equal(t, "JD", person.Nickname)
		assert.Equal(t, "Jane Doe", person.FullName)
		assert.Equal(t, "Mr.", person.Honorific)
		assert.Equal(t, 1.0, person.Position)
		assert.NotEmpty(t, person.UUID)
	})

	t.Run("positions grow within the group", func(t *testing.T) {
		person, err := repos.people.Create("Alpha", "Alex", "Best", "AB", nil)
		require.NoError(t, err)
		assert.Equal(t, 2.0, person.Position)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := repos.people.Create("Nope", "Jane", "Doe", "JD2", nil)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty required field", func(t *testing.T) {
		_, err := repos.people.Create("Alpha", "   ", "Doe", "JD3", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("nickname collision is case-insensitive and roster-wide", func(t *testing.T) {
		repos.mustGroup(t, "Beta", 1)
		_, err := repos.people.Create("Beta", "Jim", "Dean", "jd", nil)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	})
}

func TestFindPeopleWithOrCriteria(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	seqJD := repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")
	seqAB := repos.mustPerson(t, "Alpha", "Alex", "Best", "AB")

	t.Run("multiple criteria broaden the match", func(t *testing.T) {
		people, err := repos.people.FindAll(models.FindCriteria{
			FirstName: strPtr("jane"),
			Nickname:  strPtr("ab"),
		})
		require.NoError(t, err)
		require.Len(t, people, 2)
		// ordered by sequence number ascending
		assert.Equal(t, seqJD, *people[0].SequenceNumber)
		assert.Equal(t, seqAB, *people[1].SequenceNumber)
	})

	t.Run("lookup by sequence number", func(t *testing.T) {
		person, err := repos.people.FindOne(models.FindCriteria{SequenceNumber: int64Ptr(seqAB)})
		require.NoError(t, err)
		assert.Equal(t, "AB", person.Nickname)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := repos.people.FindOne(models.FindCriteria{Nickname: strPtr("nobody")})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("no criteria", func(t *testing.T) {
		_, err := repos.people.FindOne(models.FindCriteria{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
		_, err = repos.people.FindAll(models.FindCriteria{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	})
}

func TestDeletePersonCascades(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")
	repos.mustPerson(t, "Alpha", "Alex", "Best", "AB")

	require.NoError(t, repos.socials.Set("JD", "Instagram", "@jane"))
	require.NoError(t, repos.family.SetParent("AB", strPtr("JD")))

	require.NoError(t, repos.people.Delete("jd")) // case-insensitive

	_, err := repos.people.GetByNickname("JD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// AB's parent edge pointed at JD and is gone with them
	parent, err := repos.family.GetParent("AB")
	require.NoError(t, err)
	assert.Nil(t, parent)

	// deleting again is a no-op
	assert.NoError(t, repos.people.Delete("JD"))
}

func TestUpdateName(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")
	repos.mustPerson(t, "Alpha", "Alex", "Best", "AB")

	t.Run("full name recomputed on partial change", func(t *testing.T) {
		person, err := repos.people.UpdateName("JD", models.NamePatch{LastName: strPtr("Smith")})
		require.NoError(t, err)
		assert.Equal(t, "Jane", person.FirstName)
		assert.Equal(t, "Smith", person.LastName)
		assert.Equal(t, "Jane Smith", person.FullName)
	})

	t.Run("honorific only leaves names alone", func(t *testing.T) {
		person, err := repos.people.UpdateName("JD", models.NamePatch{Honorific: strPtr("Dr.")})
		require.NoError(t, err)
		assert.Equal(t, "Dr.", person.Honorific)
		assert.Equal(t, "Jane Smith", person.FullName)
	})

	t.Run("nickname collision", func(t *testing.T) {
		_, err := repos.people.UpdateName("JD", models.NamePatch{Nickname: strPtr("ab")})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	})

	t.Run("unknown person", func(t *testing.T) {
		_, err := repos.people.UpdateName("nobody", models.NamePatch{FirstName: strPtr("X")})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRenameNicknamePreservesLinkage(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")
	repos.mustPerson(t, "Alpha", "Alex", "Best", "AB")

	require.NoError(t, repos.socials.Set("JD", "instagram", "@jane"))
	require.NoError(t, repos.family.SetParent("AB", strPtr("JD")))

	_, err := repos.people.UpdateName("JD", models.NamePatch{Nickname: strPtr("Jaydee")})
	require.NoError(t, err)

	// old nickname no longer resolves, new one does
	_, err = repos.people.GetByNickname("JD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	person, err := repos.people.GetByNickname("jaydee")
	require.NoError(t, err)

	// edges and handles are keyed on the internal ID and survive the rename
	parent, err := repos.family.GetParent("AB")
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "Jaydee", *parent)

	children, err := repos.family.GetChildren("Jaydee")
	require.NoError(t, err)
	assert.Equal(t, []string{"AB"}, children)

	handles, err := repos.socials.ListByPersonID(person.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"instagram": "@jane"}, handles)
}

func TestUpdateProfile(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")

	require.NoError(t, repos.people.UpdateProfile("JD", models.ProfilePatch{
		Major:    strPtr("Physics"),
		Hometown: strPtr("Springfield"),
	}))

	// a later partial patch leaves other fields untouched
	require.NoError(t, repos.people.UpdateProfile("JD", models.ProfilePatch{
		Phone: strPtr("5551234567"),
	}))

	person, err := repos.people.GetByNickname("JD")
	require.NoError(t, err)
	require.NotNil(t, person.Major)
	assert.Equal(t, "Physics", *person.Major)
	require.NotNil(t, person.Hometown)
	assert.Equal(t, "Springfield", *person.Hometown)
	require.NotNil(t, person.Phone)
	assert.Equal(t, "5551234567", *person.Phone)

	err = repos.people.UpdateProfile("nobody", models.ProfilePatch{Major: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
