package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easybookevent/artistcal/internal/models"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "calendar",
		Password: "secret",
		Name:     "artistcal",
		Host:     "db.internal",
		Port:     5433,
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=db.internal")
	require.Contains(t, dsn, "port=5433")
	require.Contains(t, dsn, "dbname=artistcal")
	require.Contains(t, dsn, "password=secret")

	_, err = buildPostgresDSN(Config{Host: "db.internal"})
	require.Error(t, err)

	override, err := buildPostgresDSN(Config{DSN: "postgres://u:p@h/db"})
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@h/db", override)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "calendar", Password: "secret", Name: "artistcal"})
	require.NoError(t, err)
	require.Contains(t, dsn, "calendar:secret@tcp(localhost:3306)/artistcal")
	require.Contains(t, dsn, "parseTime=True")

	_, err = buildMySQLDSN(Config{User: "calendar"})
	require.Error(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, EnsureAdmin(db, "Admin@EasyBookEvent.app", "first-password"))
	require.NoError(t, EnsureAdmin(db, "admin@easybookevent.app", "second-password"))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	require.Equal(t, "admin@easybookevent.app", admins[0].Email)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })

	require.Error(t, EnsureAdmin(db, "", "password"))
	require.Error(t, EnsureAdmin(db, "admin@easybookevent.app", ""))
}
