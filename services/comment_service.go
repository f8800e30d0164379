package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/newsblog/newsblog/authz"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

// CommentService implements comment posting and listing. Comments are
// append-only: no edit or delete use case exists.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create posts a comment on an article. Anonymous actors are allowed; when
// the actor is authenticated and no author name was supplied, the comment is
// signed with the actor's name. The user link is recorded only for
// authenticated actors.
func (s *CommentService) Create(actor authz.Actor, articleID uint, form validation.CommentForm) (*models.Comment, error) {
	if !authz.Can(actor, authz.PostComment, nil) {
		return nil, &AuthorizationError{Reason: "commenting is not permitted"}
	}
	if form.AuthorName == "" && actor.Authenticated() {
		form.AuthorName = actor.Name
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var article models.Article
	if err := s.db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "article", ID: articleID}
		}
		return nil, persistence("load article", err)
	}

	comment := models.Comment{
		ArticleID:  article.ID,
		AuthorName: utils.SanitizeStrict(form.AuthorName),
		Body:       utils.SanitizeStrict(form.Body),
	}
	if actor.Authenticated() {
		uid := actor.UserID
		comment.UserID = &uid
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, persistence("create comment", err)
	}
	return &comment, nil
}

// ListByArticle returns an article's comments ordered by date descending.
func (s *CommentService) ListByArticle(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("article_id = ?", articleID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, persistence("list comments", err)
	}
	return comments, nil
}
