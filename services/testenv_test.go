package services

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/repository"
)

type testEnv struct {
	db       *gorm.DB
	sqlDB    *sql.DB
	groups   *repository.GroupRepository
	people   *repository.PersonRepository
	family   *repository.FamilyRepository
	socials  *repository.SocialRepository
	ordering *repository.OrderingRepository
	roster   *RosterService
	importer *ImportService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.InitGormDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	sequences := repository.NewSequenceRepository(db, 1)
	groups := repository.NewGroupRepository(db)
	people := repository.NewPersonRepository(db, sequences)
	family := repository.NewFamilyRepository(db)
	socials := repository.NewSocialRepository(db)
	ordering := repository.NewOrderingRepository(db)

	return testEnv{
		db:       db,
		sqlDB:    sqlDB,
		groups:   groups,
		people:   people,
		family:   family,
		socials:  socials,
		ordering: ordering,
		roster:   NewRosterService(db, sqlDB, groups, people, family, socials),
		importer: NewImportService(db, sqlDB, groups, people, ordering),
	}
}

func strPtr(s string) *string { return &s }
