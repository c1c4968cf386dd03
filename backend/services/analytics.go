package services

import (
	"log"
	"math"
	"sort"
	"time"

	"project/backend/models"
)

// Estimated average engagement time per completed activity, in minutes.
// These are fixed estimates, not measurements; the study-time figures all
// over the dashboard are defined in terms of them.
const (
	minutesPerLesson = 30
	minutesPerQuiz   = 15
)

// activityWindowDays is the size of the trailing daily-activity window.
const activityWindowDays = 30

func completedLessonCount(lessons []models.Lesson) int {
	count := 0
	for _, lesson := range lessons {
		if lesson.IsCompleted {
			count++
		}
	}
	return count
}

func completedQuizzes(quizzes []models.Quiz) []models.Quiz {
	completed := make([]models.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if quiz.Completed() {
			completed = append(completed, quiz)
		}
	}
	return completed
}

// CalculateOverview aggregates the user's whole working set (enrolled and
// owned courses, duplicates kept) into a single summary. The streak value
// is a projection from the stored state and now; it is never written back.
// A failure degrades to an all-zero overview dated today.
func CalculateOverview(user models.User, now time.Time) (overview models.AnalyticsOverview) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: overview calculation failed: %v", r)
			overview = models.AnalyticsOverview{LastActivityDate: dateKey(now)}
		}
	}()

	allCourses := user.AllCourses()
	if len(allCourses) == 0 {
		return models.AnalyticsOverview{
			CurrentStreak:    user.CurrentStreak,
			LongestStreak:    user.LongestStreak,
			LastActivityDate: dateKey(orNow(user.LastActivityDate, now)),
		}
	}

	var coursesCompleted, lessonsCompleted, quizzesTaken, studyTime int
	var quizScoreSum float64
	for _, course := range allCourses {
		if course.Progress != nil && *course.Progress >= 100 {
			coursesCompleted++
		}

		done := completedLessonCount(course.Lessons)
		lessonsCompleted += done

		completed := completedQuizzes(course.Quizzes)
		quizzesTaken += len(completed)
		for _, quiz := range completed {
			quizScoreSum += *quiz.Score
		}

		studyTime += done*minutesPerLesson + len(completed)*minutesPerQuiz
	}

	averageQuizScore := 0
	if quizzesTaken > 0 {
		averageQuizScore = int(math.Round(quizScoreSum / float64(quizzesTaken)))
	}

	// Streak projection. Every call inside the one-day window projects
	// stored+1; nothing here records that an increment already happened
	// today, so repeated calls keep projecting one higher than stored.
	// Persisting the increment is the caller's job.
	lastActivity := orNow(user.LastActivityDate, now)
	currentStreak := 0
	if daysBetween(lastActivity, now) <= 1 {
		currentStreak = user.CurrentStreak + 1
	}
	longestStreak := user.LongestStreak
	if currentStreak > longestStreak {
		longestStreak = currentStreak
	}

	return models.AnalyticsOverview{
		TotalCoursesEnrolled:  len(allCourses),
		TotalCoursesCompleted: coursesCompleted,
		TotalLessonsCompleted: lessonsCompleted,
		AverageQuizScore:      averageQuizScore,
		TotalStudyTime:        studyTime,
		CurrentStreak:         currentStreak,
		LongestStreak:         longestStreak,
		LastActivityDate:      dateKey(lastActivity),
	}
}

// CalculateCourseProgress derives one progress entry per course, sorted by
// progress descending. Ties keep their input order. A failure degrades to
// an empty list.
func CalculateCourseProgress(courses []models.Course, now time.Time) (entries []models.CourseProgress) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: course progress calculation failed: %v", r)
			entries = []models.CourseProgress{}
		}
	}()

	entries = make([]models.CourseProgress, 0, len(courses))
	for _, course := range courses {
		totalLessons := len(course.Lessons)
		lessonsCompleted := completedLessonCount(course.Lessons)

		var progress float64
		if course.Progress != nil {
			progress = *course.Progress
		} else if totalLessons > 0 {
			progress = math.Round(float64(lessonsCompleted) / float64(totalLessons) * 100)
		}

		completed := completedQuizzes(course.Quizzes)
		averageQuizScore := 0
		if len(completed) > 0 {
			var sum float64
			for _, quiz := range completed {
				sum += *quiz.Score
			}
			averageQuizScore = int(math.Round(sum / float64(len(completed))))
		}

		status := models.StatusNotStarted
		switch {
		case progress >= 100:
			status = models.StatusCompleted
		case progress > 0:
			status = models.StatusInProgress
		}

		entries = append(entries, models.CourseProgress{
			CourseID:         course.ID,
			CourseTitle:      course.Title,
			Progress:         progress,
			LessonsCompleted: lessonsCompleted,
			TotalLessons:     totalLessons,
			QuizzesTaken:     len(completed),
			AverageQuizScore: averageQuizScore,
			TimeSpent:        lessonsCompleted*minutesPerLesson + len(completed)*minutesPerQuiz,
			EnrolledDate:     dateKey(course.CreatedAt),
			LastAccessedDate: dateKey(orNow(course.LastAccessed, now)),
			Status:           status,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Progress > entries[j].Progress
	})
	return entries
}

// CalculateDailyActivity returns exactly 30 buckets for the inclusive
// range [today-29, today], oldest first, zero-filled. There are no
// per-lesson completion timestamps, so a course's entire completed
// activity is attributed to the single bucket matching its lastAccessed
// day; courses never accessed, or last accessed outside the window,
// contribute nothing. A failure degrades to an empty list.
func CalculateDailyActivity(courses []models.Course, now time.Time) (days []models.DailyActivity) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: daily activity calculation failed: %v", r)
			days = []models.DailyActivity{}
		}
	}()

	index := make(map[string]int, activityWindowDays)
	days = make([]models.DailyActivity, 0, activityWindowDays)
	for i := activityWindowDays - 1; i >= 0; i-- {
		key := dateKey(now.AddDate(0, 0, -i))
		index[key] = len(days)
		days = append(days, models.DailyActivity{Date: key})
	}

	for _, course := range courses {
		if course.LastAccessed == nil {
			continue
		}
		i, ok := index[dateKey(*course.LastAccessed)]
		if !ok {
			continue
		}

		done := completedLessonCount(course.Lessons)
		quizzes := len(completedQuizzes(course.Quizzes))
		days[i].LessonsCompleted += done
		days[i].QuizzesTaken += quizzes
		days[i].TimeSpent += done*minutesPerLesson + quizzes*minutesPerQuiz
		// FlashcardsReviewed stays 0: the course snapshot carries no
		// flashcard-review signal.
	}
	return days
}

// CalculateWeeklyStats re-buckets daily activity by week label, in
// first-encountered (chronological) order. AverageQuizScore stays 0: no
// per-day quiz score exists to average. A failure degrades to an empty
// list.
func CalculateWeeklyStats(daily []models.DailyActivity) (weeks []models.WeeklyStats) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: weekly stats calculation failed: %v", r)
			weeks = []models.WeeklyStats{}
		}
	}()

	index := make(map[string]int)
	weeks = make([]models.WeeklyStats, 0, 6)
	for _, day := range daily {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		label := weekLabel(date)

		i, ok := index[label]
		if !ok {
			i = len(weeks)
			index[label] = i
			weeks = append(weeks, models.WeeklyStats{Week: label})
		}
		weeks[i].LessonsCompleted += day.LessonsCompleted
		weeks[i].QuizzesTaken += day.QuizzesTaken
		weeks[i].TotalTimeSpent += day.TimeSpent
		weeks[i].FlashcardsReviewed += day.FlashcardsReviewed
	}
	return weeks
}

// CalculateLearningStats summarizes session lengths and topics over the
// daily buckets. The mastered/in-progress topic split is positional (first
// three seen vs the rest); there is no real mastery signal in the model.
func CalculateLearningStats(daily []models.DailyActivity, courses []models.Course) (stats models.LearningStats) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: learning stats calculation failed: %v", r)
			stats = models.LearningStats{
				PreferredStudyTime: "Flexible",
				MostActiveDay:      "Monday",
				TopicsMastered:     []string{},
				TopicsInProgress:   []string{},
			}
		}
	}()

	totalMinutes := 0
	daysWithActivity := 0
	weekdayTotals := make(map[string]int)
	weekdayOrder := make([]string, 0, 7)
	for _, day := range daily {
		totalMinutes += day.TimeSpent
		if day.TimeSpent > 0 {
			daysWithActivity++
		}

		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		name := date.Weekday().String()
		if _, ok := weekdayTotals[name]; !ok {
			weekdayOrder = append(weekdayOrder, name)
		}
		weekdayTotals[name] += day.TimeSpent
	}

	averageSession := 0
	if daysWithActivity > 0 {
		averageSession = int(math.Round(float64(totalMinutes) / float64(daysWithActivity)))
	}

	// Highest summed time wins; ties keep the first weekday encountered.
	mostActiveDay := "Monday"
	maxTime := 0
	for _, name := range weekdayOrder {
		if weekdayTotals[name] > maxTime {
			maxTime = weekdayTotals[name]
			mostActiveDay = name
		}
	}

	topics := topicUnion(courses)
	mastered := topics
	inProgress := []string{}
	if len(topics) > 3 {
		mastered = topics[:3]
		inProgress = topics[3:]
	}

	return models.LearningStats{
		TotalMinutesLearned: totalMinutes,
		AverageStudySession: averageSession,
		PreferredStudyTime:  "Flexible", // no time-of-day signal in the model
		MostActiveDay:       mostActiveDay,
		TopicsMastered:      mastered,
		TopicsInProgress:    inProgress,
	}
}

// topicUnion collects every course's topics with set semantics, keeping
// first-seen order.
func topicUnion(courses []models.Course) []string {
	seen := make(map[string]bool)
	union := make([]string, 0)
	for _, course := range courses {
		for _, topic := range course.TopicList() {
			if !seen[topic] {
				seen[topic] = true
				union = append(union, topic)
			}
		}
	}
	return union
}

// GetCompleteAnalytics assembles the full dashboard payload from a user
// snapshot. Each sub-calculator degrades to its zero value on internal
// failure; a panic raised in the composition itself is left to the caller
// to handle.
func GetCompleteAnalytics(user models.User, now time.Time) models.AnalyticsDashboard {
	allCourses := user.AllCourses()

	overview := CalculateOverview(user, now)
	courseProgress := CalculateCourseProgress(allCourses, now)
	dailyActivity := CalculateDailyActivity(allCourses, now)

	return models.AnalyticsDashboard{
		Overview:       overview,
		CourseProgress: courseProgress,
		DailyActivity:  dailyActivity,
		WeeklyStats:    CalculateWeeklyStats(dailyActivity),
		Achievements:   CalculateAchievements(overview, courseProgress, now),
		LearningStats:  CalculateLearningStats(dailyActivity, allCourses),
	}
}
