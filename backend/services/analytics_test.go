package services

import (
	"testing"
	"time"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed evaluation instant for every calculator test.
var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func lessonsWithCompleted(completed, total int) []models.Lesson {
	lessons := make([]models.Lesson, total)
	for i := range lessons {
		lessons[i].IsCompleted = i < completed
	}
	return lessons
}

func completedQuiz(score float64, at time.Time) models.Quiz {
	return models.Quiz{Score: &score, CompletedAt: &at}
}

func TestOverviewEmptyState(t *testing.T) {
	lastActivity := testNow.AddDate(0, 0, -3)
	user := models.User{
		CurrentStreak:    4,
		LongestStreak:    9,
		LastActivityDate: &lastActivity,
	}

	overview := CalculateOverview(user, testNow)

	assert.Equal(t, 0, overview.TotalCoursesEnrolled)
	assert.Equal(t, 0, overview.TotalCoursesCompleted)
	assert.Equal(t, 0, overview.TotalLessonsCompleted)
	assert.Equal(t, 0, overview.AverageQuizScore)
	assert.Equal(t, 0, overview.TotalStudyTime)
	// Streak state passes through unchanged when there are no courses
	assert.Equal(t, 4, overview.CurrentStreak)
	assert.Equal(t, 9, overview.LongestStreak)
	assert.Equal(t, "2025-03-12", overview.LastActivityDate)
}

func TestOverviewEmptyStateDefaultsActivityToNow(t *testing.T) {
	overview := CalculateOverview(models.User{}, testNow)
	assert.Equal(t, "2025-03-15", overview.LastActivityDate)
}

func TestOverviewSinglePassAggregation(t *testing.T) {
	course := models.Course{
		Title:        "Linear Algebra",
		Progress:     floatPtr(100),
		Lessons:      lessonsWithCompleted(5, 5),
		LastAccessed: timePtr(testNow),
		Quizzes: []models.Quiz{
			completedQuiz(80, testNow),
			completedQuiz(90, testNow),
			{Score: floatPtr(70)},           // no completedAt: not taken
			{CompletedAt: timePtr(testNow)}, // no score: not taken
		},
	}
	user := models.User{Courses: []models.Course{course}}

	overview := CalculateOverview(user, testNow)

	assert.Equal(t, 1, overview.TotalCoursesEnrolled)
	assert.Equal(t, 1, overview.TotalCoursesCompleted)
	assert.Equal(t, 5, overview.TotalLessonsCompleted)
	assert.Equal(t, 85, overview.AverageQuizScore)
	assert.Equal(t, 5*30+2*15, overview.TotalStudyTime)
}

func TestOverviewDoubleCounting(t *testing.T) {
	course := models.Course{
		Progress: floatPtr(100),
		Lessons:  lessonsWithCompleted(2, 2),
	}
	// The same course in both lists is counted twice, by design of the
	// upstream data model.
	user := models.User{
		EnrolledCourses: []models.Course{course},
		Courses:         []models.Course{course},
	}

	overview := CalculateOverview(user, testNow)
	assert.Equal(t, 2, overview.TotalCoursesEnrolled)
	assert.Equal(t, 2, overview.TotalCoursesCompleted)
	assert.Equal(t, 4, overview.TotalLessonsCompleted)

	entries := CalculateCourseProgress(user.AllCourses(), testNow)
	assert.Len(t, entries, 2)
}

func TestOverviewStreakProjection(t *testing.T) {
	course := models.Course{Lessons: lessonsWithCompleted(1, 1)}

	cases := []struct {
		name          string
		daysAgo       int
		wantStreak    int
		wantLongest   int
		storedStreak  int
		storedLongest int
	}{
		{name: "same day", daysAgo: 0, storedStreak: 3, storedLongest: 3, wantStreak: 4, wantLongest: 4},
		{name: "yesterday", daysAgo: 1, storedStreak: 3, storedLongest: 10, wantStreak: 4, wantLongest: 10},
		{name: "broken", daysAgo: 2, storedStreak: 5, storedLongest: 8, wantStreak: 0, wantLongest: 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lastActivity := testNow.AddDate(0, 0, -tc.daysAgo)
			user := models.User{
				CurrentStreak:    tc.storedStreak,
				LongestStreak:    tc.storedLongest,
				LastActivityDate: &lastActivity,
				Courses:          []models.Course{course},
			}

			overview := CalculateOverview(user, testNow)
			assert.Equal(t, tc.wantStreak, overview.CurrentStreak)
			assert.Equal(t, tc.wantLongest, overview.LongestStreak)
		})
	}
}

func TestCourseProgressStatusBoundaries(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{0, models.StatusNotStarted},
		{1, models.StatusInProgress},
		{99, models.StatusInProgress},
		{100, models.StatusCompleted},
	}

	for _, tc := range cases {
		course := models.Course{Progress: floatPtr(tc.progress)}
		entries := CalculateCourseProgress([]models.Course{course}, testNow)
		require.Len(t, entries, 1)
		assert.Equal(t, tc.want, entries[0].Status, "progress %v", tc.progress)
	}
}

func TestCourseProgressSortStable(t *testing.T) {
	courses := []models.Course{
		{Title: "A", Progress: floatPtr(50)},
		{Title: "B", Progress: floatPtr(100)},
		{Title: "C", Progress: floatPtr(50)},
	}

	entries := CalculateCourseProgress(courses, testNow)
	require.Len(t, entries, 3)
	assert.Equal(t, "B", entries[0].CourseTitle)
	// Equal progress keeps input order
	assert.Equal(t, "A", entries[1].CourseTitle)
	assert.Equal(t, "C", entries[2].CourseTitle)
}

func TestCourseProgressDerivedFromLessons(t *testing.T) {
	course := models.Course{
		Title:   "Go Basics",
		Lessons: lessonsWithCompleted(2, 3),
		Quizzes: []models.Quiz{completedQuiz(75, testNow)},
	}
	course.CreatedAt = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	entries := CalculateCourseProgress([]models.Course{course}, testNow)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, float64(67), entry.Progress) // round(2/3*100)
	assert.Equal(t, models.StatusInProgress, entry.Status)
	assert.Equal(t, 2, entry.LessonsCompleted)
	assert.Equal(t, 3, entry.TotalLessons)
	assert.Equal(t, 1, entry.QuizzesTaken)
	assert.Equal(t, 75, entry.AverageQuizScore)
	assert.Equal(t, 2*30+1*15, entry.TimeSpent)
	assert.Equal(t, "2025-02-01", entry.EnrolledDate)
	// No lastAccessed recorded: defaults to today
	assert.Equal(t, "2025-03-15", entry.LastAccessedDate)
}

func TestCourseProgressNoLessons(t *testing.T) {
	entries := CalculateCourseProgress([]models.Course{{Title: "Empty"}}, testNow)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(0), entries[0].Progress)
	assert.Equal(t, models.StatusNotStarted, entries[0].Status)
}

func TestDailyActivityWindowShape(t *testing.T) {
	days := CalculateDailyActivity(nil, testNow)

	require.Len(t, days, 30)
	assert.Equal(t, "2025-02-14", days[0].Date)
	assert.Equal(t, "2025-03-15", days[29].Date)
	for _, day := range days {
		assert.Zero(t, day.LessonsCompleted)
		assert.Zero(t, day.QuizzesTaken)
		assert.Zero(t, day.TimeSpent)
		assert.Zero(t, day.FlashcardsReviewed)
	}
}

func TestDailyActivityAttribution(t *testing.T) {
	oldest := models.Course{
		Lessons:      lessonsWithCompleted(2, 4),
		Quizzes:      []models.Quiz{completedQuiz(90, testNow)},
		LastAccessed: timePtr(testNow.AddDate(0, 0, -29)),
	}
	newest := models.Course{
		Lessons:      lessonsWithCompleted(1, 1),
		LastAccessed: timePtr(testNow),
	}
	outside := models.Course{
		Lessons:      lessonsWithCompleted(3, 3),
		LastAccessed: timePtr(testNow.AddDate(0, 0, -30)),
	}
	neverAccessed := models.Course{
		Lessons: lessonsWithCompleted(3, 3),
	}

	days := CalculateDailyActivity([]models.Course{oldest, newest, outside, neverAccessed}, testNow)
	require.Len(t, days, 30)

	// 29 days ago lands in the oldest bucket
	assert.Equal(t, 2, days[0].LessonsCompleted)
	assert.Equal(t, 1, days[0].QuizzesTaken)
	assert.Equal(t, 2*30+1*15, days[0].TimeSpent)

	// today lands in the newest bucket
	assert.Equal(t, 1, days[29].LessonsCompleted)
	assert.Equal(t, 30, days[29].TimeSpent)

	// 30 days ago and never-accessed courses contribute nothing
	total := 0
	for _, day := range days {
		total += day.LessonsCompleted
	}
	assert.Equal(t, 3, total)
}

func TestWeeklyStatsPartitionsWindow(t *testing.T) {
	days := CalculateDailyActivity(nil, testNow)
	weeks := CalculateWeeklyStats(days)

	// [2025-02-14, 2025-03-15] crosses six 7-day month blocks
	require.Len(t, weeks, 6)
	labels := make([]string, 0, len(weeks))
	for _, week := range weeks {
		labels = append(labels, week.Week)
	}
	assert.Equal(t, []string{
		"Week 2 Feb 2025",
		"Week 3 Feb 2025",
		"Week 4 Feb 2025",
		"Week 1 Mar 2025",
		"Week 2 Mar 2025",
		"Week 3 Mar 2025",
	}, labels)
}

func TestWeeklyStatsSumsDays(t *testing.T) {
	daily := []models.DailyActivity{
		{Date: "2025-03-08", LessonsCompleted: 2, QuizzesTaken: 1, TimeSpent: 75},
		{Date: "2025-03-10", LessonsCompleted: 1, TimeSpent: 30},
		{Date: "2025-03-15", LessonsCompleted: 4, TimeSpent: 120},
	}

	weeks := CalculateWeeklyStats(daily)
	require.Len(t, weeks, 2)

	assert.Equal(t, "Week 2 Mar 2025", weeks[0].Week)
	assert.Equal(t, 3, weeks[0].LessonsCompleted)
	assert.Equal(t, 1, weeks[0].QuizzesTaken)
	assert.Equal(t, 105, weeks[0].TotalTimeSpent)
	// No per-day quiz score exists, so there is nothing to average
	assert.Equal(t, 0, weeks[0].AverageQuizScore)

	assert.Equal(t, "Week 3 Mar 2025", weeks[1].Week)
	assert.Equal(t, 4, weeks[1].LessonsCompleted)
}

func TestLearningStats(t *testing.T) {
	daily := []models.DailyActivity{
		{Date: "2025-03-10", TimeSpent: 60}, // Monday
		{Date: "2025-03-11", TimeSpent: 30}, // Tuesday
		{Date: "2025-03-12"},                // Wednesday, no activity
	}
	courses := []models.Course{
		{Topics: "Algebra,Geometry"},
		{Topics: "Geometry,Calculus,Statistics,Logic"},
	}

	stats := CalculateLearningStats(daily, courses)

	assert.Equal(t, 90, stats.TotalMinutesLearned)
	assert.Equal(t, 45, stats.AverageStudySession)
	assert.Equal(t, "Monday", stats.MostActiveDay)
	assert.Equal(t, "Flexible", stats.PreferredStudyTime)
	assert.Equal(t, []string{"Algebra", "Geometry", "Calculus"}, stats.TopicsMastered)
	assert.Equal(t, []string{"Statistics", "Logic"}, stats.TopicsInProgress)
}

func TestLearningStatsDefaults(t *testing.T) {
	stats := CalculateLearningStats(nil, nil)

	assert.Equal(t, 0, stats.TotalMinutesLearned)
	assert.Equal(t, 0, stats.AverageStudySession)
	assert.Equal(t, "Monday", stats.MostActiveDay)
	assert.Empty(t, stats.TopicsMastered)
	assert.Empty(t, stats.TopicsInProgress)
}

func TestLearningStatsWeekdayTie(t *testing.T) {
	daily := []models.DailyActivity{
		{Date: "2025-03-11", TimeSpent: 30}, // Tuesday
		{Date: "2025-03-13", TimeSpent: 30}, // Thursday, same total
	}

	stats := CalculateLearningStats(daily, nil)
	assert.Equal(t, "Tuesday", stats.MostActiveDay)
}

func TestGetCompleteAnalytics(t *testing.T) {
	course := models.Course{
		Title:        "Philosophy of Mind",
		Topics:       "Dualism,Functionalism",
		Progress:     floatPtr(100),
		Lessons:      lessonsWithCompleted(5, 5),
		LastAccessed: timePtr(testNow),
		Quizzes: []models.Quiz{
			completedQuiz(80, testNow),
			completedQuiz(90, testNow),
		},
	}
	user := models.User{Courses: []models.Course{course}}

	dashboard := GetCompleteAnalytics(user, testNow)

	assert.Equal(t, 1, dashboard.Overview.TotalCoursesEnrolled)
	assert.Equal(t, 1, dashboard.Overview.TotalCoursesCompleted)
	assert.Equal(t, 5, dashboard.Overview.TotalLessonsCompleted)
	assert.Equal(t, 85, dashboard.Overview.AverageQuizScore)
	assert.Equal(t, 180, dashboard.Overview.TotalStudyTime)

	require.Len(t, dashboard.CourseProgress, 1)
	assert.Equal(t, models.StatusCompleted, dashboard.CourseProgress[0].Status)

	require.Len(t, dashboard.DailyActivity, 30)
	today := dashboard.DailyActivity[29]
	assert.Equal(t, 5, today.LessonsCompleted)
	assert.Equal(t, 2, today.QuizzesTaken)
	assert.Equal(t, 180, today.TimeSpent)

	totalWeeklyLessons := 0
	for _, week := range dashboard.WeeklyStats {
		totalWeeklyLessons += week.LessonsCompleted
	}
	assert.Equal(t, 5, totalWeeklyLessons)

	ids := make([]string, 0, len(dashboard.Achievements))
	for _, a := range dashboard.Achievements {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "early-bird")
	assert.Contains(t, ids, "starter")
	assert.Contains(t, ids, "completer")
	assert.Contains(t, ids, "quiz-master")
	assert.NotContains(t, ids, "learner")
	assert.NotContains(t, ids, "warrior")

	assert.Equal(t, 180, dashboard.LearningStats.TotalMinutesLearned)
	assert.Equal(t, 180, dashboard.LearningStats.AverageStudySession)
	assert.Equal(t, []string{"Dualism", "Functionalism"}, dashboard.LearningStats.TopicsMastered)
}
