package models

import (
	"time"

	"gorm.io/gorm"
)

// Article categories form a fixed enumeration; Miscellaneous is the default.
const (
	CategoryArt           = "Art"
	CategoryFashion       = "Fashion"
	CategoryMiscellaneous = "Miscellaneous"
	CategoryPolitics      = "Politics"
)

// Categories lists every valid article category.
var Categories = []string{CategoryArt, CategoryFashion, CategoryMiscellaneous, CategoryPolitics}

// ValidCategory reports whether name belongs to the fixed category set.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Article represents a published piece owned by a user.
// CreatedAt is immutable after creation; edits never touch it.
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Excerpt   string    `gorm:"size:500" json:"excerpt"`
	Category  string    `gorm:"size:32;default:'Miscellaneous'" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// OwnerID satisfies the authorization target contract.
func (a Article) OwnerID() uint { return a.UserID }

// BeforeCreate fills defaults the same way the database schema would.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Category == "" {
		a.Category = CategoryMiscellaneous
	}
	return nil
}
