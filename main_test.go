package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/config"
	"github.com/yeremiapane/restaurant-orders/database"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
)

// useTempDatabase points the configuration at a fresh SQLite file.
func useTempDatabase(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cli.db") + "?_foreign_keys=on"
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("SESSION_SECRET", "cli-test-secret")
	t.Setenv("MENU_FILE", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	adminFlags = config.AdminCredentials{}
	return dsn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func openDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestMigrateCommand(t *testing.T) {
	dsn := useTempDatabase(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations complete.")

	db := openDB(t, dsn)
	for _, table := range []string{"users", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	assert.Zero(t, admins)
}

func TestMigrateSeedsConfiguredAdmin(t *testing.T) {
	dsn := useTempDatabase(t)
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	t.Setenv("ADMIN_PASSWORD", "owner-pw")

	_, err := execute(t, "migrate")
	require.NoError(t, err)
	// second run finds the admin and leaves it alone
	_, err = execute(t, "migrate")
	require.NoError(t, err)

	users := services.NewUserService(openDB(t, dsn))
	admin, err := users.Authenticate(context.Background(), "owner@example.com", "owner-pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestCreateAdminCommand(t *testing.T) {
	dsn := useTempDatabase(t)

	out, err := execute(t, "create-admin", "--username", "root", "--email", "root@example.com", "--password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Administrator root (root@example.com) created.")

	users := services.NewUserService(openDB(t, dsn))
	admin, err := users.Authenticate(context.Background(), "root@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, admin.Identity().IsAdmin())

	_, err = execute(t, "create-admin", "--username", "root", "--email", "root@example.com", "--password", "s3cret")
	assert.ErrorIs(t, err, services.ErrDuplicateUser)
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	useTempDatabase(t)

	_, err := execute(t, "create-admin", "--username", "root")
	assert.Error(t, err)
}
