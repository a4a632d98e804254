package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/database/testutil"
	"github.com/easybookevent/artistcal/internal/models"
	"github.com/easybookevent/artistcal/pkg/crypto"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()

	hashed, err := crypto.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	user := models.User{Email: email, Password: hashed, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedArtist(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	return seedUser(t, db, email, models.RoleArtist)
}

func seedAvailability(t *testing.T, db *gorm.DB, artistID, date string) models.AvailabilityDay {
	t.Helper()

	day := models.AvailabilityDay{
		ArtistID: artistID,
		Date:     date,
		Color:    models.DefaultAvailabilityColor,
	}
	require.NoError(t, db.Create(&day).Error)
	return day
}
