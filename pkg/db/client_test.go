package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

func testConfig(name string) config.DBConfig {
	return config.DBConfig{
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

func TestNewMigratesSchemaAndPings(t *testing.T) {
	client, err := New(context.Background(), testConfig("client_migrate"), nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))

	for _, table := range []string{"properties", "bookings", "invoice_line_items", "user_preferences"} {
		assert.True(t, client.DB().Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	client, err := New(context.Background(), testConfig("client_unique"), nil)
	require.NoError(t, err)
	defer client.Close()

	user := &models.User{ID: uuid.New(), Email: "dup@staysuite.io", Name: "First", Role: enums.UserRoleAdmin, PasswordHash: "x"}
	require.NoError(t, client.DB().Create(user).Error)

	clash := &models.User{ID: uuid.New(), Email: "dup@staysuite.io", Name: "Second", Role: enums.UserRoleAdmin, PasswordHash: "x"}
	err = client.DB().Create(clash).Error
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err, "email"))
	assert.True(t, IsUniqueViolation(err, ""))
	assert.False(t, IsUniqueViolation(err, "phone"))
	assert.False(t, IsUniqueViolation(nil, "email"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, err := New(context.Background(), testConfig("client_tx"), nil)
	require.NoError(t, err)
	defer client.Close()

	sentinel := errors.New("abort")
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		member := &models.TeamMember{ID: uuid.New(), Name: "Temp", Email: "temp@staysuite.io", Role: enums.TeamRoleCleaner, Active: true}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int64
	require.NoError(t, client.DB().Model(&models.TeamMember{}).Count(&count).Error)
	assert.Zero(t, count)
}
