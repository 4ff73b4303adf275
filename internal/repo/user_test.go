package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agileboard/backend/internal/models"
)

func newUserRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return New(db)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r := newUserRepo(t)
	ctx := context.Background()

	first := models.User{Email: "dev@example.com", PasswordHash: "x", Role: models.RoleDeveloper, IsActive: true}
	require.NoError(t, r.CreateUser(ctx, &first))

	// The unique index, not a racy pre-check, rejects the duplicate.
	second := models.User{Email: "dev@example.com", PasswordHash: "y", Role: models.RoleDeveloper, IsActive: true}
	err := r.CreateUser(ctx, &second)
	assert.ErrorIs(t, err, ErrEmailTaken)
}
