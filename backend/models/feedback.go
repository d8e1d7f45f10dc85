package models

import "gorm.io/gorm"

const (
	MinRating = 1
	MaxRating = 5
)

// SaFeedback is a user's rating of a self assessment.
type SaFeedback struct {
	gorm.Model
	Rating           int `gorm:"not null"`
	Comment          string
	BasicUserID      uint
	BasicUser        User `gorm:"foreignKey:BasicUserID"`
	SelfAssessmentID uint
	SelfAssessment   SelfAssessment
}
