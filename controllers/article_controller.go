package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsblog/newsblog/middleware"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/services"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
	"github.com/newsblog/newsblog/viewmodel"
)

// ArticleController manages article and comment endpoints.
type ArticleController struct {
	articles *services.ArticleService
	comments *services.CommentService
}

// NewArticleController creates an ArticleController.
func NewArticleController(db *gorm.DB) *ArticleController {
	return &ArticleController{
		articles: services.NewArticleService(db),
		comments: services.NewCommentService(db),
	}
}

// cacheWrapper mirrors the standard response envelope for cached payloads.
type cacheWrapper struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// List returns paginated article views, newest first, optionally narrowed to
// one category.
func (a *ArticleController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	category := strings.TrimSpace(ctx.Query("category"))

	cacheKey := fmt.Sprintf("cache:articles:list:cat=%s:page=%d:size=%d", category, page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	articles, total, err := a.articles.List(category, page, pageSize)
	if err != nil {
		respondServiceError(ctx, err, nil)
		return
	}

	payload := gin.H{
		"items": viewmodel.Articles(articles),
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	utils.CacheSetJSON(cacheKey, cacheWrapper{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// Get returns one article view together with its comments.
func (a *ArticleController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid article id")
		return
	}

	cacheKey := "cache:article:detail:" + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		respondServiceError(ctx, err, nil)
		return
	}

	payload := gin.H{
		"article":  viewmodel.Article(*article),
		"comments": viewmodel.Comments(article.Comments),
	}
	utils.CacheSetJSON(cacheKey, cacheWrapper{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// ListByAuthor returns a user's articles, newest first.
func (a *ArticleController) ListByAuthor(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid user id")
		return
	}
	articles, err := a.articles.ListByAuthor(id)
	if err != nil {
		respondServiceError(ctx, err, nil)
		return
	}
	utils.Success(ctx, gin.H{"items": viewmodel.Articles(articles)})
}

// Create stores a new article owned by the authenticated actor.
func (a *ArticleController) Create(ctx *gin.Context) {
	var form validation.ArticleForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	article, err := a.articles.Create(middleware.Actor(ctx), form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}

	utils.InvalidateByPrefix("cache:articles:list:")
	utils.Success(ctx, gin.H{
		"article":  viewmodel.Article(*article),
		"redirect": fmt.Sprintf("/articles/%d", article.ID),
		"notice":   "Article created successfully",
	})
}

// Update edits an existing article; owner or admin only.
func (a *ArticleController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid article id")
		return
	}
	var form validation.ArticleForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	article, err := a.articles.Update(middleware.Actor(ctx), id, form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}

	utils.InvalidateByPrefix("cache:articles:list:")
	utils.InvalidateByPrefix("cache:article:detail:" + ctx.Param("id"))
	utils.Success(ctx, gin.H{
		"article":  viewmodel.Article(*article),
		"redirect": fmt.Sprintf("/articles/%d", article.ID),
		"notice":   "Article updated successfully",
	})
}

// Delete removes an article and its comments; owner or admin only.
func (a *ArticleController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid article id")
		return
	}

	if err := a.articles.Delete(middleware.Actor(ctx), id); err != nil {
		respondServiceError(ctx, err, nil)
		return
	}

	utils.InvalidateByPrefix("cache:articles:list:")
	utils.InvalidateByPrefix("cache:article:detail:" + ctx.Param("id"))
	utils.Success(ctx, gin.H{
		"redirect": "/articles",
		"notice":   "Article deleted successfully",
	})
}

// CreateComment posts a comment; anonymous visitors are allowed.
func (a *ArticleController) CreateComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid article id")
		return
	}
	var form validation.CommentForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	comment, err := a.comments.Create(middleware.Actor(ctx), id, form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}

	utils.InvalidateByPrefix("cache:article:detail:" + ctx.Param("id"))
	utils.Success(ctx, gin.H{
		"comment":  viewmodel.Comment(*comment),
		"redirect": fmt.Sprintf("/articles/%d", id),
		"notice":   "Comment posted",
	})
}

// Categories returns the fixed category enumeration for article forms and
// category filter routes.
func (a *ArticleController) Categories(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"categories": models.Categories})
}
