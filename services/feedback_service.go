package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/newsblog/newsblog/config"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

// FeedbackService stores feedback messages and notifies operators.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Submit validates and stores a feedback message. Operator notification goes
// out by mail best-effort; a mail failure never fails the submission.
func (s *FeedbackService) Submit(form validation.FeedbackForm) (*models.Feedback, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	fb := models.Feedback{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	}
	if err := s.db.Create(&fb).Error; err != nil {
		return nil, persistence("create feedback", err)
	}

	if to := config.Get().FeedbackNotifyEmail; to != "" {
		go func(fb models.Feedback) {
			subject := fmt.Sprintf("New feedback from %s", fb.Name)
			body := fmt.Sprintf("From: %s <%s>\n\n%s", fb.Name, fb.Email, fb.Message)
			if err := utils.SendMail(to, subject, body); err != nil && utils.Sugar != nil {
				utils.Sugar.Warnf("feedback notification mail failed: %v", err)
			}
		}(fb)
	}
	return &fb, nil
}
