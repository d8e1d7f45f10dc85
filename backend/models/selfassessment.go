package models

import "gorm.io/gorm"

// SelfAssessment is a single version of the whole survey. Once any Answer
// references it, its core skill structure is never edited in place; creating
// an element forks a new version instead (see services.ElementService).
type SelfAssessment struct {
	gorm.Model
	Title       string      `gorm:"not null"`
	Description string      `gorm:"not null"`
	CoreSkills  []CoreSkill `gorm:"constraint:OnDelete:CASCADE"`
	Answers     []Answer
}

// CoreSkill is one page of a self assessment.
type CoreSkill struct {
	gorm.Model
	Name               string `gorm:"not null"`
	Description        string `gorm:"not null"`
	SelfAssessmentID   uint
	DetailedElements   []DetailedElement   `gorm:"constraint:OnDelete:CASCADE"`
	TextElements       []TextElement       `gorm:"constraint:OnDelete:CASCADE"`
	SimplifiedElements []SimplifiedElement `gorm:"constraint:OnDelete:CASCADE"`
}

// Elements lists the core skill's questions, detailed first, then text, then
// simplified. Survey pages and reports rely on this ordering.
func (cs *CoreSkill) Elements() []Element {
	elements := make([]Element, 0,
		len(cs.DetailedElements)+len(cs.TextElements)+len(cs.SimplifiedElements))
	for i := range cs.DetailedElements {
		elements = append(elements, &cs.DetailedElements[i])
	}
	for i := range cs.TextElements {
		elements = append(elements, &cs.TextElements[i])
	}
	for i := range cs.SimplifiedElements {
		elements = append(elements, &cs.SimplifiedElements[i])
	}
	return elements
}
