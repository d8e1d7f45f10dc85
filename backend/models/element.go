package models

import "gorm.io/gorm"

const (
	MinPosition = 1
	MaxPosition = 100
)

// Element is a single question of a core skill. The concrete types are
// DetailedElement, TextElement and SimplifiedElement.
type Element interface {
	ElementID() uint
	ElementDescription() string
	ElementPosition() int
}

// DetailedElement is a multiple choice question with detailed options.
type DetailedElement struct {
	gorm.Model
	Description     string `gorm:"not null"`
	Position        int    `gorm:"not null"`
	CoreSkillID     uint
	DetailedOptions []DetailedOption `gorm:"constraint:OnDelete:CASCADE"`
}

func (e *DetailedElement) ElementID() uint            { return e.ID }
func (e *DetailedElement) ElementDescription() string { return e.Description }
func (e *DetailedElement) ElementPosition() int       { return e.Position }

// HasOption reports whether the option belongs to this element.
func (e *DetailedElement) HasOption(option *DetailedOption) bool {
	if option == nil {
		return false
	}
	for i := range e.DetailedOptions {
		if e.DetailedOptions[i].ID == option.ID {
			return true
		}
	}
	return false
}

// DetailedOption is a single option of a detailed element, owned by exactly
// one element.
type DetailedOption struct {
	gorm.Model
	Description       string `gorm:"not null"`
	Position          int    `gorm:"not null"`
	DetailedElementID uint
}

// TextElement is a question answered with free text.
type TextElement struct {
	gorm.Model
	Description string `gorm:"not null"`
	Position    int    `gorm:"not null"`
	CoreSkillID uint
}

func (e *TextElement) ElementID() uint            { return e.ID }
func (e *TextElement) ElementDescription() string { return e.Description }
func (e *TextElement) ElementPosition() int       { return e.Position }

// SimplifiedElement is a question answered on a fixed scale from strongly
// disagree to strongly agree.
type SimplifiedElement struct {
	gorm.Model
	Description string `gorm:"not null"`
	Position    int    `gorm:"not null"`
	CoreSkillID uint
}

func (e *SimplifiedElement) ElementID() uint            { return e.ID }
func (e *SimplifiedElement) ElementDescription() string { return e.Description }
func (e *SimplifiedElement) ElementPosition() int       { return e.Position }
