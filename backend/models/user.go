package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Persisted streak state. Written by the auth and progress handlers;
	// the analytics service only reads it and projects a streak value
	// without saving anything back.
	CurrentStreak    int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int        `gorm:"default:0" json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`

	// A course enrolled from the catalog is linked here AND gets an owned
	// copy in Courses, so it shows up in both lists. Downstream counts
	// depend on that, do not deduplicate.
	EnrolledCourses []Course `gorm:"many2many:user_enrollments" json:"enrolledCourses"`
	Courses         []Course `gorm:"foreignKey:OwnerID" json:"courses"`
}

// AllCourses returns the working set for analytics: enrolled and owned
// courses concatenated, duplicates kept.
func (u *User) AllCourses() []Course {
	all := make([]Course, 0, len(u.EnrolledCourses)+len(u.Courses))
	all = append(all, u.EnrolledCourses...)
	all = append(all, u.Courses...)
	return all
}
