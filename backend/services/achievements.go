package services

import (
	"log"
	"math"
	"time"

	"project/backend/models"
)

// achievementRule describes one badge: the overview metric it watches and
// the threshold at which it appears in the output at all. Below the
// threshold the badge is omitted entirely, not emitted at 0%.
type achievementRule struct {
	id          string
	name        string
	description string
	icon        string
	threshold   float64
	metric      func(models.AnalyticsOverview) float64
}

// Rules are evaluated in table order; output order follows it.
var achievementRules = []achievementRule{
	{
		id: "early-bird", name: "🐦 Early Bird",
		description: "Completed 5+ lessons", icon: "🐦",
		threshold: 5,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.TotalLessonsCompleted) },
	},
	{
		id: "starter", name: "🎓 Course Starter",
		description: "Enrolled in 1 course", icon: "🎓",
		threshold: 1,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.TotalCoursesEnrolled) },
	},
	{
		id: "learner", name: "📚 Learner",
		description: "Enrolled in 3+ courses", icon: "📚",
		threshold: 3,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.TotalCoursesEnrolled) },
	},
	{
		id: "completer", name: "✅ Course Completer",
		description: "Completed 1 course", icon: "✅",
		threshold: 1,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.TotalCoursesCompleted) },
	},
	{
		id: "quiz-master", name: "⭐ Quiz Master",
		description: "Average quiz score above 80%", icon: "⭐",
		threshold: 80,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.AverageQuizScore) },
	},
	{
		id: "on-fire", name: "🔥 On Fire",
		description: "7 day study streak", icon: "🔥",
		threshold: 7,
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.CurrentStreak) },
	},
	{
		id: "warrior", name: "⚔️ Study Warrior",
		description: "100+ hours of study", icon: "⚔️",
		threshold: 6000, // 100 hours in minutes
		metric:    func(o models.AnalyticsOverview) float64 { return float64(o.TotalStudyTime) },
	},
}

// ruleProgress maps a metric value onto a 0-100 progress figure for its
// rule, capped at 100 and rounded to two decimals.
func ruleProgress(value, threshold float64) float64 {
	progress := value / threshold * 100
	if progress > 100 {
		progress = 100
	}
	return math.Round(progress*100) / 100
}

// CalculateAchievements evaluates the rule table against the overview.
// There is no persisted unlock history, so every qualifying badge is
// stamped with the evaluation time. The course progress list is part of
// the contract for future per-course rules; the current rules read the
// overview only. A failure degrades to an empty list.
func CalculateAchievements(overview models.AnalyticsOverview, courseProgress []models.CourseProgress, now time.Time) (unlocked []models.Achievement) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analytics: achievement evaluation failed: %v", r)
			unlocked = []models.Achievement{}
		}
	}()

	unlocked = make([]models.Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		value := rule.metric(overview)
		if value < rule.threshold {
			continue
		}
		unlocked = append(unlocked, models.Achievement{
			ID:           rule.id,
			Name:         rule.name,
			Description:  rule.description,
			Icon:         rule.icon,
			Progress:     ruleProgress(value, rule.threshold),
			UnlockedDate: now.UTC().Format(time.RFC3339),
		})
	}
	return unlocked
}
