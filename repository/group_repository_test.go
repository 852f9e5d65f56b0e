package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/rosterbackend/apperrors"
)

func TestCreateGroup(t *testing.T) {
	repos := newTestRepos(t)

	group, err := repos.groups.Create("  Alpha  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", group.Name)

	_, err = repos.groups.Create("Alpha", 3)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	_, err = repos.groups.Create("   ", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListGroupsOrdering(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Gamma", 2)
	repos.mustGroup(t, "Line 10", 1)
	repos.mustGroup(t, "Line 2", 1)
	repos.mustGroup(t, "Alpha", 0)

	groups, err := repos.groups.ListAll()
	require.NoError(t, err)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	// order key first, natural name order breaking the tie
	assert.Equal(t, []string{"Alpha", "Line 2", "Line 10", "Gamma"}, names)
}

func TestDeleteGroupCascades(t *testing.T) {
	repos := newTestRepos(t)
	repos.mustGroup(t, "Alpha", 0)
	repos.mustGroup(t, "Beta", 1)
	repos.mustPerson(t, "Alpha", "Jane", "Doe", "JD")
	repos.mustPerson(t, "Alpha", "Alex", "Best", "AB")
	repos.mustPerson(t, "Beta", "Zoe", "Zimm", "ZZ")

	require.NoError(t, repos.socials.Set("JD", "instagram", "@jane"))
	require.NoError(t, repos.family.SetParent("AB", strPtr("JD")))
	// an edge crossing group boundaries goes too when either side is deleted
	require.NoError(t, repos.family.SetParent("ZZ", strPtr("JD")))

	require.NoError(t, repos.groups.Delete("Alpha"))

	_, err := repos.groups.GetByName("Alpha")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repos.people.GetByNickname("JD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repos.people.GetByNickname("AB")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// ZZ survives but their parent edge to JD is gone
	parent, err := repos.family.GetParent("ZZ")
	require.NoError(t, err)
	assert.Nil(t, parent)

	// deleting an absent group is a no-op
	assert.NoError(t, repos.groups.Delete("Alpha"))
}
