package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
)

// Seed bootstraps demo accounts and a couple of articles when the user table
// is empty. Safe to call on every boot.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return persistence("count users", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("password123")
	if err != nil {
		return persistence("hash seed password", err)
	}

	users := []models.User{
		{Name: "Admin", Email: "admin@newsblog.local", PasswordHash: hash, IsAdmin: true},
		{Name: "Pete Wilkins", Email: "pete@newsblog.local", PasswordHash: hash},
		{Name: "Kara Engel", Email: "kara@newsblog.local", PasswordHash: hash},
	}
	articles := []models.Article{
		{
			Title:    "A fresh canvas downtown",
			Body:     "<p>" + strings.Repeat("The mural is not painted yet, but the wall is primed and waiting. ", 2) + "</p>",
			Excerpt:  "not painted yet...",
			Category: models.CategoryArt,
		},
		{
			Title:    "Runway season opens",
			Body:     "<p>The legendary show returns to the catwalk this spring with a completely new lineup of designers.</p>",
			Category: models.CategoryFashion,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		for i := range articles {
			articles[i].UserID = users[(i%2)+1].ID
			articles[i].CreatedAt = now
			if err := tx.Create(&articles[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
