package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/newsblog/newsblog/authz"
	"github.com/newsblog/newsblog/config"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Article{}, &models.Comment{}, &models.Feedback{}, &models.PageView{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, PasswordHash: hash, IsAdmin: isAdmin}
	require.NoError(t, db.Create(user).Error)
	return user
}

func actorFor(u *models.User) authz.Actor {
	return authz.Actor{UserID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin}
}

func createTestArticle(t *testing.T, db *gorm.DB, owner *models.User, title, category string) *models.Article {
	t.Helper()
	article := &models.Article{
		UserID:   owner.ID,
		Title:    title,
		Body:     "This body is comfortably longer than the fifty character minimum required by validation.",
		Category: category,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}
