package controllers

import (
	"fmt"
	"log"
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// loadUserSnapshot fetches the user with both course lists and their
// lessons and quizzes preloaded. The analytics service treats the result
// as a read-only snapshot.
func (ac *AnalyticsController) loadUserSnapshot(userID uint) (models.User, error) {
	var user models.User
	err := ac.DB.
		Preload("EnrolledCourses.Lessons").
		Preload("EnrolledCourses.Quizzes").
		Preload("Courses.Lessons").
		Preload("Courses.Quizzes").
		First(&user, userID).Error
	return user, err
}

// GetDashboard godoc
// @Summary Get the analytics dashboard
// @Description Returns overview, per-course progress, daily/weekly activity, achievements and learning stats
// @Tags analytics
// @Produce json
// @Success 200 {object} models.AnalyticsDashboard
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics [get]
func (ac *AnalyticsController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	dashboard, err := computeDashboard(user, time.Now())
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute analytics")
	}

	return utils.Success(c, fiber.StatusOK, dashboard)
}

// computeDashboard runs the aggregation facade. The facade deliberately
// lets composition failures escape; this wrapper turns them into an error
// and logs the detail so the client only ever sees a generic message.
func computeDashboard(user models.User, now time.Time) (dashboard models.AnalyticsDashboard, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: dashboard aggregation failed for user %d: %v", user.ID, r)
			err = fmt.Errorf("analytics aggregation failed: %v", r)
		}
	}()
	return services.GetCompleteAnalytics(user, now), nil
}

// GetOverview returns only the scalar summary.
func (ac *AnalyticsController) GetOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"overview": services.CalculateOverview(user, time.Now()),
	})
}

// GetCourseProgress returns the per-course progress list.
func (ac *AnalyticsController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseProgress": services.CalculateCourseProgress(user.AllCourses(), time.Now()),
	})
}

// GetAchievements returns the currently unlocked achievement badges.
func (ac *AnalyticsController) GetAchievements(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	now := time.Now()
	overview := services.CalculateOverview(user, now)
	courseProgress := services.CalculateCourseProgress(user.AllCourses(), now)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"achievements": services.CalculateAchievements(overview, courseProgress, now),
	})
}

// GetLearningStats returns the session-length and topic summary.
func (ac *AnalyticsController) GetLearningStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	allCourses := user.AllCourses()
	daily := services.CalculateDailyActivity(allCourses, time.Now())

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"learningStats": services.CalculateLearningStats(daily, allCourses),
	})
}

// GetDailyActivity returns the trailing 30-day activity buckets.
func (ac *AnalyticsController) GetDailyActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.loadUserSnapshot(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"dailyActivity": services.CalculateDailyActivity(user.AllCourses(), time.Now()),
	})
}
