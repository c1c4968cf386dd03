package models

// Derived analytics structures. Every value here is recomputed from the
// user's course snapshot on each request and never stored.

type AnalyticsOverview struct {
	TotalCoursesEnrolled  int    `json:"totalCoursesEnrolled"`
	TotalCoursesCompleted int    `json:"totalCoursesCompleted"`
	TotalLessonsCompleted int    `json:"totalLessonsCompleted"`
	AverageQuizScore      int    `json:"averageQuizScore"`
	TotalStudyTime        int    `json:"totalStudyTime"` // minutes
	CurrentStreak         int    `json:"currentStreak"`
	LongestStreak         int    `json:"longestStreak"`
	LastActivityDate      string `json:"lastActivityDate"`
}

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

type CourseProgress struct {
	CourseID         uint    `json:"courseId"`
	CourseTitle      string  `json:"courseTitle"`
	Progress         float64 `json:"progress"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	TotalLessons     int     `json:"totalLessons"`
	QuizzesTaken     int     `json:"quizzesTaken"`
	AverageQuizScore int     `json:"averageQuizScore"`
	TimeSpent        int     `json:"timeSpent"` // minutes
	EnrolledDate     string  `json:"enrolledDate"`
	LastAccessedDate string  `json:"lastAccessedDate"`
	Status           string  `json:"status"`
}

type DailyActivity struct {
	Date               string `json:"date"` // YYYY-MM-DD
	LessonsCompleted   int    `json:"lessonsCompleted"`
	QuizzesTaken       int    `json:"quizzesTaken"`
	TimeSpent          int    `json:"timeSpent"` // minutes
	FlashcardsReviewed int    `json:"flashcardsReviewed"`
}

type WeeklyStats struct {
	Week               string `json:"week"`
	LessonsCompleted   int    `json:"lessonsCompleted"`
	QuizzesTaken       int    `json:"quizzesTaken"`
	TotalTimeSpent     int    `json:"totalTimeSpent"`
	AverageQuizScore   int    `json:"averageQuizScore"`
	FlashcardsReviewed int    `json:"flashcardsReviewed"`
}

type Achievement struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	Progress     float64 `json:"progress"`
	UnlockedDate string  `json:"unlockedDate"`
}

type LearningStats struct {
	TotalMinutesLearned int      `json:"totalMinutesLearned"`
	AverageStudySession int      `json:"averageStudySession"`
	PreferredStudyTime  string   `json:"preferredStudyTime"`
	MostActiveDay       string   `json:"mostActiveDay"`
	TopicsMastered      []string `json:"topicsMastered"`
	TopicsInProgress    []string `json:"topicsInProgress"`
}

type AnalyticsDashboard struct {
	Overview       AnalyticsOverview `json:"overview"`
	CourseProgress []CourseProgress  `json:"courseProgress"`
	DailyActivity  []DailyActivity   `json:"dailyActivity"`
	WeeklyStats    []WeeklyStats     `json:"weeklyStats"`
	Achievements   []Achievement     `json:"achievements"`
	LearningStats  LearningStats     `json:"learningStats"`
}
