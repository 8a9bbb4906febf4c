package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/confluencehack/registration_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.HackathonRegistration{}))
	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.CreateUser(&domain.User{Email: "a@test.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	found, err := repo.FindUserByEmail("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindUserByEmail("missing@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	exists, err := repo.ExistsByEmail("a@test.com")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.CreateUser(&domain.User{Email: "a@test.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.CreateUser(&domain.User{Email: "a@test.com", PasswordHash: "y"})
	assert.Error(t, err, "unique index on email must reject the duplicate")
}

func TestUserRepository_EmailCaseSensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.CreateUser(&domain.User{Email: "Mixed@Test.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.FindUserByEmail("mixed@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound, "emails are stored and matched case-sensitively")
}

func TestRegistrationRepository_CreateWithCode(t *testing.T) {
	repo := NewRegistrationRepository(newTestDB(t))

	code := func(id uint) string { return fmt.Sprintf("HACK%05d", id) }

	first := &domain.HackathonRegistration{
		TeamName:        "Team One",
		InstitutionName: "Inst",
		TeamSize:        3,
		Members:         `["a","b","c"]`,
		ProblemDomain:   "health",
		ProjectTitle:    "P1",
		GithubRepoLink:  "https://github.com/x/y",
		DemoVideoURL:    "https://v.test/1",
		BonafideFile:    "https://files.test/b1",
		SubmittedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.CreateWithCode(first, code))
	assert.Equal(t, "HACK00001", first.RegistrationID)

	second := &domain.HackathonRegistration{
		TeamName:        "Team One",
		InstitutionName: "Inst",
		TeamSize:        3,
		Members:         `["a","b","c"]`,
		ProblemDomain:   "health",
		ProjectTitle:    "P1",
		GithubRepoLink:  "https://github.com/x/y",
		DemoVideoURL:    "https://v.test/1",
		BonafideFile:    "https://files.test/b2",
		SubmittedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.CreateWithCode(second, code))
	assert.Equal(t, "HACK00002", second.RegistrationID)

	// the persisted row carries the code
	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "HACK00001", all[0].RegistrationID)
	assert.Equal(t, "HACK00002", all[1].RegistrationID)
}

func TestRegistrationRepository_FindByUserID(t *testing.T) {
	repo := NewRegistrationRepository(newTestDB(t))

	uid := uint(7)
	reg := &domain.HackathonRegistration{
		UserID:          &uid,
		TeamName:        "Team",
		InstitutionName: "Inst",
		TeamSize:        1,
		Members:         `["a"]`,
		ProblemDomain:   "edu",
		ProjectTitle:    "P",
		GithubRepoLink:  "https://github.com/x/y",
		DemoVideoURL:    "https://v.test/1",
		BonafideFile:    "https://files.test/b",
		SubmittedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.CreateWithCode(reg, func(id uint) string { return fmt.Sprintf("HACK%05d", id) }))

	found, err := repo.FindByUserID(uid)
	require.NoError(t, err)
	assert.Equal(t, reg.RegistrationID, found.RegistrationID)

	_, err = repo.FindByUserID(99)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	taken, err := repo.ExistsForUser(uid)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsForUser(99)
	require.NoError(t, err)
	assert.False(t, taken)
}
