package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsblog/newsblog/services"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

// FeedbackController handles the public feedback form.
type FeedbackController struct {
	feedback *services.FeedbackService
}

// NewFeedbackController creates a FeedbackController.
func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{feedback: services.NewFeedbackService(db)}
}

// Submit validates and stores a feedback message.
func (f *FeedbackController) Submit(ctx *gin.Context) {
	var form validation.FeedbackForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	fb, err := f.feedback.Submit(form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}

	utils.Success(ctx, gin.H{
		"feedback": fb,
		"redirect": "/feedback/success",
		"notice":   "Message sent successfully",
	})
}
