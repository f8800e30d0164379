package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/newsblog/newsblog/authz"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

// ArticleService implements article authoring and reading use cases.
// Every mutation checks the authorization policy before touching the store.
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService.
func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// Create validates the form and stores a new article owned by the actor.
func (s *ArticleService) Create(actor authz.Actor, form validation.ArticleForm) (*models.Article, error) {
	if !authz.Can(actor, authz.CreateArticle, nil) {
		return nil, &AuthorizationError{Reason: "you must be logged in to create articles"}
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	article := models.Article{
		UserID:   actor.UserID,
		Title:    utils.SanitizeStrict(form.Title),
		Body:     utils.Sanitize(form.Body),
		Excerpt:  utils.SanitizeStrict(form.Excerpt),
		Category: form.Category,
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, persistence("create article", err)
	}
	article.User = models.User{ID: actor.UserID, Name: actor.Name}
	return &article, nil
}

// Update edits title/body/excerpt/category of an existing article. Only the
// owner or an admin may edit; the creation timestamp is never touched.
func (s *ArticleService) Update(actor authz.Actor, id uint, form validation.ArticleForm) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.EditArticle, article) {
		return nil, &AuthorizationError{Reason: "you can only edit your own articles"}
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	updates := map[string]interface{}{
		"title":    utils.SanitizeStrict(form.Title),
		"body":     utils.Sanitize(form.Body),
		"excerpt":  utils.SanitizeStrict(form.Excerpt),
		"category": form.Category,
	}
	if err := s.db.Model(article).Updates(updates).Error; err != nil {
		return nil, persistence("update article", err)
	}
	return s.Get(id)
}

// Delete removes the article and all of its comments as one unit. Only the
// owner or an admin may delete.
func (s *ArticleService) Delete(actor authz.Actor, id uint) error {
	article, err := s.load(id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.DeleteArticle, article) {
		return &AuthorizationError{Reason: "you can only delete your own articles"}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
	if err != nil {
		return persistence("delete article", err)
	}
	return nil
}

// Get loads an article with its author and comments, newest comment first.
func (s *ArticleService) Get(id uint) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "article", ID: id}
		}
		return nil, persistence("load article", err)
	}
	return &article, nil
}

// List returns one page of articles ordered by creation time descending,
// together with the total count. A non-empty category narrows the listing;
// page and pageSize below 1 fall back to the first page of ten.
func (s *ArticleService) List(category string, page, pageSize int) ([]models.Article, int64, error) {
	if category != "" && !models.ValidCategory(category) {
		return nil, 0, &ValidationError{Fields: validation.Errors{
			"category": fmt.Sprintf("unknown category %q", category),
		}}
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	q := s.db.Model(&models.Article{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, persistence("count articles", err)
	}

	var articles []models.Article
	err := q.Preload("User").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, persistence("list articles", err)
	}
	return articles, total, nil
}

// ListByAuthor returns a user's articles, newest first.
func (s *ArticleService) ListByAuthor(userID uint) ([]models.Article, error) {
	var articles []models.Article
	if err := s.db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, persistence("list user articles", err)
	}
	return articles, nil
}

func (s *ArticleService) load(id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "article", ID: id}
		}
		return nil, persistence("load article", err)
	}
	return &article, nil
}
