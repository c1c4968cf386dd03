package controllers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// GetUserCourses godoc
// @Summary Get the user's courses
// @Description Returns enrolled and self-created courses with lessons and quizzes
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetUserCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := cc.DB.
		Preload("EnrolledCourses.Lessons").
		Preload("EnrolledCourses.Quizzes").
		Preload("Courses.Lessons").
		Preload("Courses.Quizzes").
		First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"enrolledCourses": user.EnrolledCourses,
		"courses":         user.Courses,
	})
}

// GetAvailableCourses returns the catalog: courses open for enrollment.
func (cc *CoursesController) GetAvailableCourses(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, cc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var courses []models.Course
	if err := cc.DB.
		Preload("Lessons").
		Preload("Quizzes").
		Where("catalog = ?", true).
		Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query courses")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"courses": courses})
}

type CourseInput struct {
	Title       string   `json:"title"`
	ShortDesc   string   `json:"short_desc"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
	Catalog     bool     `json:"catalog"`
	Lessons     []struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		VideoURL string `json:"videoUrl"`
	} `json:"lessons"`
	Quizzes []struct {
		Title     string `json:"title"`
		Questions string `json:"questions"`
	} `json:"quizzes"`
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a course owned by the user, with its lessons and quizzes
// @Tags courses
// @Accept json
// @Produce json
// @Param course body CourseInput true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	course := models.Course{
		Title:       input.Title,
		ShortDesc:   input.ShortDesc,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		Topics:      strings.Join(input.Topics, ","),
		Catalog:     input.Catalog,
		OwnerID:     &userID,
	}
	for i, lesson := range input.Lessons {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title:         lesson.Title,
			Content:       lesson.Content,
			VideoURL:      lesson.VideoURL,
			SequenceOrder: i + 1,
		})
	}
	for _, quiz := range input.Quizzes {
		course.Quizzes = append(course.Quizzes, models.Quiz{
			Title:     quiz.Title,
			Questions: quiz.Questions,
		})
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, fiber.Map{"course": course})
}

// GetCourseDetails returns one course with lessons and quizzes. Only the
// owner can read a non-catalog course.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.
		Preload("Lessons").
		Preload("Quizzes").
		First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	if !course.Catalog && (course.OwnerID == nil || *course.OwnerID != userID) {
		return utils.Forbidden(c, "You don't have access to this course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

// EnrollCourse godoc
// @Summary Enroll in a catalog course
// @Description Copies the catalog course into the user's own list and links the enrollment
// @Tags courses
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/enroll [post]
func (cc *CoursesController) EnrollCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var catalogCourse models.Course
	if err := cc.DB.
		Preload("Lessons").
		Preload("Quizzes").
		Where("catalog = ?", true).
		First(&catalogCourse, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	// The user gets a private copy to track completion on, and the same
	// copy is linked as an enrollment. It therefore appears in both course
	// lists, which the analytics counts rely on.
	course := copyCourseForUser(catalogCourse, userID)
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not enroll in course")
	}

	user := models.User{Model: gorm.Model{ID: userID}}
	if err := cc.DB.Model(&user).Association("EnrolledCourses").Append(&course); err != nil {
		return utils.InternalServerError(c, "Could not enroll in course")
	}

	return utils.Created(c, fiber.Map{"course": course})
}

func copyCourseForUser(src models.Course, userID uint) models.Course {
	course := models.Course{
		Title:       src.Title,
		ShortDesc:   src.ShortDesc,
		Description: src.Description,
		Difficulty:  src.Difficulty,
		Topics:      src.Topics,
		OwnerID:     &userID,
	}
	for _, lesson := range src.Lessons {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title:         lesson.Title,
			Content:       lesson.Content,
			VideoURL:      lesson.VideoURL,
			SequenceOrder: lesson.SequenceOrder,
		})
	}
	for _, quiz := range src.Quizzes {
		course.Quizzes = append(course.Quizzes, models.Quiz{
			Title:     quiz.Title,
			Questions: quiz.Questions,
		})
	}
	return course
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Description Marks the lesson done, refreshes course progress and the user's streak
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/lessons/{lessonId}/complete [post]
func (cc *CoursesController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, status, msg := cc.findOwnedCourse(c, userID)
	if course == nil {
		return utils.Error(c, status, fiber.NewError(status, msg))
	}

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson *models.Lesson
	for i := range course.Lessons {
		if course.Lessons[i].ID == uint(lessonID) {
			lesson = &course.Lessons[i]
			break
		}
	}
	if lesson == nil {
		return utils.NotFound(c, "Lesson not found")
	}

	now := time.Now()
	lesson.IsCompleted = true
	if err := cc.DB.Save(lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	// Refresh the authoritative progress percentage and access date.
	completed := 0
	for _, l := range course.Lessons {
		if l.IsCompleted {
			completed++
		}
	}
	progress := math.Round(float64(completed) / float64(len(course.Lessons)) * 100)
	course.Progress = &progress
	course.LastAccessed = &now
	if err := cc.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err == nil {
		updateActivityStreak(cc.DB, &user, now)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"lessonId":         lesson.ID,
		"progress":         progress,
		"lessonsCompleted": completed,
	})
}

// SubmitQuiz godoc
// @Summary Submit a quiz result
// @Description Records the score and completion time for a quiz
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/quizzes/{quizId}/submit [post]
func (cc *CoursesController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, status, msg := cc.findOwnedCourse(c, userID)
	if course == nil {
		return utils.Error(c, status, fiber.NewError(status, msg))
	}

	quizID, err := strconv.Atoi(c.Params("quizId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	type QuizInput struct {
		Score float64 `json:"score"`
	}
	var input QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Score < 0 || input.Score > 100 {
		return utils.BadRequest(c, "Score must be between 0 and 100")
	}

	var quiz *models.Quiz
	for i := range course.Quizzes {
		if course.Quizzes[i].ID == uint(quizID) {
			quiz = &course.Quizzes[i]
			break
		}
	}
	if quiz == nil {
		return utils.NotFound(c, "Quiz not found")
	}

	now := time.Now()
	quiz.Score = &input.Score
	quiz.CompletedAt = &now
	if err := cc.DB.Save(quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not update quiz")
	}

	course.LastAccessed = &now
	if err := cc.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err == nil {
		updateActivityStreak(cc.DB, &user, now)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"quizId":      quiz.ID,
		"score":       input.Score,
		"completedAt": now,
	})
}

// findOwnedCourse loads the course from the :id param with lessons and
// quizzes, checking it belongs to the user. Returns nil plus a status and
// message when it cannot be used.
func (cc *CoursesController) findOwnedCourse(c *fiber.Ctx, userID uint) (*models.Course, int, string) {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid course ID"
	}

	var course models.Course
	if err := cc.DB.
		Preload("Lessons").
		Preload("Quizzes").
		First(&course, courseID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found"
	}

	if course.OwnerID == nil || *course.OwnerID != userID {
		return nil, fiber.StatusForbidden, "You don't have access to this course"
	}
	return &course, 0, ""
}
