package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title       string `json:"title"`
	ShortDesc   string `json:"short_desc"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"` // beginner, intermediate, advanced
	Topics      string `json:"topics"`     // comma-separated
	OwnerID     *uint  `json:"ownerId"`
	Catalog     bool   `gorm:"default:false" json:"catalog"` // listed in the public catalog

	// Authoritative completion percentage (0-100). Nil means it has never
	// been set and must be derived from the lesson completion ratio.
	Progress     *float64   `json:"progress"`
	LastAccessed *time.Time `json:"lastAccessed"`

	Lessons []Lesson `json:"lessons"`
	Quizzes []Quiz   `json:"quizzes"`
}

// TopicList splits the comma-separated topics field, keeping order and
// dropping empty entries.
func (c *Course) TopicList() []string {
	topics := make([]string, 0)
	for _, topic := range strings.Split(c.Topics, ",") {
		if topic = strings.TrimSpace(topic); topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}

type Lesson struct {
	gorm.Model
	CourseID      uint   `json:"courseId"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	VideoURL      string `json:"videoUrl"`
	SequenceOrder int    `json:"sequenceOrder"`
	IsCompleted   bool   `gorm:"default:false" json:"isCompleted"`
}

type Quiz struct {
	gorm.Model
	CourseID    uint       `json:"courseId"`
	Title       string     `json:"title"`
	Questions   string     `json:"questions"` // JSON array of questions
	CompletedAt *time.Time `json:"completedAt"`
	Score       *float64   `json:"score"` // 0-100, set on submission
}

// Completed reports whether the quiz was actually taken: it needs both a
// completion timestamp and a recorded score.
func (q *Quiz) Completed() bool {
	return q.CompletedAt != nil && q.Score != nil
}
