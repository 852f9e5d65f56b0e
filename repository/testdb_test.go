package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/database"
)

// newTestDB opens a fresh shared-cache in-memory database so every
// connection in the pool sees the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.InitGormDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type testRepos struct {
	db        *gorm.DB
	groups    *GroupRepository
	people    *PersonRepository
	sequences *SequenceRepository
	ordering  *OrderingRepository
	family    *FamilyRepository
	socials   *SocialRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	db := newTestDB(t)
	sequences := NewSequenceRepository(db, 1)
	return testRepos{
		db:        db,
		groups:    NewGroupRepository(db),
		people:    NewPersonRepository(db, sequences),
		sequences: sequences,
		ordering:  NewOrderingRepository(db),
		family:    NewFamilyRepository(db),
		socials:   NewSocialRepository(db),
	}
}

func (r testRepos) mustGroup(t *testing.T, name string, orderKey int) {
	t.Helper()
	_, err := r.groups.Create(name, orderKey)
	require.NoError(t, err)
}

func (r testRepos) mustPerson(t *testing.T, group, first, last, nick string) int64 {
	t.Helper()
	person, err := r.people.Create(group, first, last, nick, nil)
	require.NoError(t, err)
	require.NotNil(t, person.SequenceNumber)
	return *person.SequenceNumber
}
