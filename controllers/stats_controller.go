package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
)

// StatsController provides site statistics such as counts and today's views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts. A failed counter is logged and reported
// as zero instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount, articleCount, commentCount, todayViews int64

	s.count(&models.User{}, &userCount, "users")
	s.count(&models.Article{}, &articleCount, "articles")
	s.count(&models.Comment{}, &commentCount, "comments")

	// The recorder keys rows by local midnight, so today's views are every
	// row in [midnight, next midnight). A range compare works for both the
	// MySQL DATE column and the datetime string sqlite stores.
	now := time.Now().In(time.Local)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if err := s.db.Model(&models.PageView{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(count),0)").
		Scan(&todayViews).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnw("stats counter failed", "counter", "today_views", "cause", err)
		}
		todayViews = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":    userCount,
		"article_count": articleCount,
		"comment_count": commentCount,
		"today_views":   todayViews,
	})
}

func (s *StatsController) count(model interface{}, dest *int64, name string) {
	if err := s.db.Model(model).Count(dest).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnw("stats counter failed", "counter", name, "cause", err)
		}
		*dest = 0
	}
}
