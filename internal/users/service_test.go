package users

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
)

var dbSerial atomic.Int64

// fastParams keeps argon2id cheap enough for the test suite.
func fastParams() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%d?mode=memory&cache=shared", dbSerial.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), fastParams(), nil)
	require.NoError(t, err)
	return svc
}

func createUser(t *testing.T, svc Service, email string) *models.User {
	t.Helper()

	user, err := svc.Create(context.Background(), CreateUserInput{
		Email:    email,
		Name:     "Priya Shah",
		Role:     enums.UserRolePropertyManager,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return user
}

func TestCreateHashesPassword(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	user := createUser(t, svc, "priya@staysuite.dev")
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")
	assert.Nil(t, user.LastLoginAt)
}

func TestCreateRejectsShortPassword(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "priya@staysuite.dev",
		Name:     "Priya Shah",
		Role:     enums.UserRoleAdmin,
		Password: "short",
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDuplicateEmailConflicts(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	createUser(t, svc, "priya@staysuite.dev")
	_, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "priya@staysuite.dev",
		Name:     "Another Priya",
		Role:     enums.UserRoleAdmin,
		Password: "different-password",
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestVerifyCredentials(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	createUser(t, svc, "priya@staysuite.dev")

	user, err := svc.VerifyCredentials(context.Background(), "priya@staysuite.dev", "correct-horse-battery")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt, "successful login is stamped")

	_, err = svc.VerifyCredentials(context.Background(), "priya@staysuite.dev", "wrong-password")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.VerifyCredentials(context.Background(), "nobody@staysuite.dev", "correct-horse-battery")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "unknown email is indistinguishable from a bad password")
}

func TestUpdateRehashesPassword(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	user := createUser(t, svc, "priya@staysuite.dev")

	password := "rotated-password-1"
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Password: &password})
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)

	_, err = svc.VerifyCredentials(context.Background(), "priya@staysuite.dev", "rotated-password-1")
	assert.NoError(t, err)
}

func TestListFiltersByRole(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	manager := createUser(t, svc, "priya@staysuite.dev")
	_, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "omar@staysuite.dev",
		Name:     "Omar Haddad",
		Role:     enums.UserRoleAdmin,
		Password: "another-password",
	})
	require.NoError(t, err)

	role := enums.UserRolePropertyManager
	rows, err := svc.List(context.Background(), ListFilters{Role: &role})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, manager.ID, rows[0].ID)
}

func TestPreferenceIsOnePerUser(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	user := createUser(t, svc, "priya@staysuite.dev")

	pref, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "UTC", pref.Timezone)
	assert.Equal(t, "en-US", pref.Locale)
	assert.Equal(t, "light", pref.Theme)
	assert.True(t, pref.NotificationsEnabled)

	_, err = svc.CreatePreference(context.Background(), CreatePreferenceInput{UserID: user.ID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestPreferenceRequiresExistingUser(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{UserID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteUserCascadesPreference(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	user := createUser(t, svc, "priya@staysuite.dev")

	pref, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{UserID: user.ID})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetPreferenceByID(context.Background(), pref.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	prefs, err := svc.ListPreferences(context.Background(), PreferenceFilters{UserID: &user.ID})
	require.NoError(t, err)
	assert.Empty(t, prefs)

	theme := "dark"
	updatedPref, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{
		UserID: user.ID,
		Theme:  theme,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "recreating for a deleted user fails")
	assert.Nil(t, updatedPref)
}
