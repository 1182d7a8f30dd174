package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	_, err := db.Exec(
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		"charlie", "$2a$10$fakehashfortestingonlyfakehashfortestingonly",
	)
	assert.NoError(t, err)

	repo := NewUserReadRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nonexistent")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
