package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nannyhub/babysitter-api/internal/db"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

var t0 = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	family  models.User
	family2 models.User
	sitter  models.User
	profile models.SitterProfile
}

func seed(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		family:  models.User{FirstName: "Fiona", LastName: "One", Email: "f1@example.com", PasswordHash: "x", Phone: "100", Address: "Elm 1", City: "Lisboa", Role: models.RoleFamily},
		family2: models.User{FirstName: "Frank", LastName: "Two", Email: "f2@example.com", PasswordHash: "x", City: "Porto", Role: models.RoleFamily},
		sitter:  models.User{FirstName: "Sara", LastName: "Sitter", Email: "s1@example.com", PasswordHash: "x", Phone: "200", City: "Lisboa", Role: models.RoleSitter},
	}
	require.NoError(t, gdb.Create(&f.family).Error)
	require.NoError(t, gdb.Create(&f.family2).Error)
	require.NoError(t, gdb.Create(&f.sitter).Error)

	f.profile = models.SitterProfile{UserID: f.sitter.ID, Bio: "calm", YearsExperience: 4, HourlyRate: decimal.RequireFromString("25.00")}
	require.NoError(t, gdb.Omit("User").Create(&f.profile).Error)

	return f
}

func insertBooking(t *testing.T, gdb *gorm.DB, familyID, profileID uint, status string, start time.Time, createdAt time.Time) models.Booking {
	t.Helper()
	b := models.Booking{
		FamilyUserID:    familyID,
		SitterProfileID: profileID,
		StartTime:       start,
		EndTime:         start.Add(2 * time.Hour),
		TotalCost:       decimal.RequireFromString("50.00"),
		Status:          status,
		CreatedAt:       createdAt,
	}
	require.NoError(t, gdb.Omit("Family", "SitterProfile", "Review").Create(&b).Error)
	return b
}
