package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Answer is a single user's completion of a whole survey. It is created
// lazily on the first save and reused for later saves by the same user on
// the same self assessment version.
type Answer struct {
	gorm.Model
	SelfAssessmentID  uint
	SelfAssessment    SelfAssessment
	BasicUserID       uint
	BasicUser         User               `gorm:"foreignKey:BasicUserID"`
	DetailedAnswers   []DetailedAnswer   `gorm:"constraint:OnDelete:CASCADE"`
	TextAnswers       []TextAnswer       `gorm:"constraint:OnDelete:CASCADE"`
	SimplifiedAnswers []SimplifiedAnswer `gorm:"constraint:OnDelete:CASCADE"`
}

// SubAnswers lists the answer's sub answers, detailed first, then text, then
// simplified, matching CoreSkill.Elements.
func (a *Answer) SubAnswers() []SubAnswer {
	subAnswers := make([]SubAnswer, 0,
		len(a.DetailedAnswers)+len(a.TextAnswers)+len(a.SimplifiedAnswers))
	for i := range a.DetailedAnswers {
		subAnswers = append(subAnswers, &a.DetailedAnswers[i])
	}
	for i := range a.TextAnswers {
		subAnswers = append(subAnswers, &a.TextAnswers[i])
	}
	for i := range a.SimplifiedAnswers {
		subAnswers = append(subAnswers, &a.SimplifiedAnswers[i])
	}
	return subAnswers
}

// SubAnswer is a user's answer for a single question. The concrete types are
// DetailedAnswer, TextAnswer and SimplifiedAnswer, each bound to the
// matching element type.
type SubAnswer interface {
	SubAnswerID() uint
	Element() Element
	IsFinished() bool
}

// DetailedAnswer is a user's answer to a DetailedElement.
type DetailedAnswer struct {
	gorm.Model
	AnswerID          uint
	DetailedElementID uint
	DetailedElement   DetailedElement
	ChoiceID          *uint
	Choice            *DetailedOption `gorm:"foreignKey:ChoiceID"`
}

func (d *DetailedAnswer) SubAnswerID() uint { return d.ID }
func (d *DetailedAnswer) Element() Element  { return &d.DetailedElement }

// IsFinished reports whether a choice belonging to the element is recorded.
func (d *DetailedAnswer) IsFinished() bool {
	return d.DetailedElement.HasOption(d.Choice)
}

// SetChoiceAndValidate records the user's choice after checking that it
// belongs to the answered element. On failure the previous choice is kept.
func (d *DetailedAnswer) SetChoiceAndValidate(choice *DetailedOption) error {
	if d.DetailedElement.ID != 0 && !d.DetailedElement.HasOption(choice) {
		var choiceID uint
		if choice != nil {
			choiceID = choice.ID
		}
		return fmt.Errorf("%w: element %d does not contain option %d",
			ErrValidation, d.DetailedElement.ID, choiceID)
	}
	d.Choice = choice
	if choice != nil {
		id := choice.ID
		d.ChoiceID = &id
	} else {
		d.ChoiceID = nil
	}
	return nil
}

// TextAnswer is a user's answer to a TextElement.
type TextAnswer struct {
	gorm.Model
	AnswerID      uint
	TextElementID uint
	TextElement   TextElement
	Text          string
}

func (t *TextAnswer) SubAnswerID() uint { return t.ID }
func (t *TextAnswer) Element() Element  { return &t.TextElement }
func (t *TextAnswer) IsFinished() bool  { return len(t.Text) != 0 }

// SetTextAndValidate records the user's text, which must be non-empty.
func (t *TextAnswer) SetTextAndValidate(text string) error {
	if len(text) == 0 {
		return fmt.Errorf("%w: text for a text answer cannot be empty", ErrValidation)
	}
	t.Text = text
	return nil
}

const (
	MinChoice = 1
	MaxChoice = 9
)

// SimplifiedAnswer is a user's answer to a SimplifiedElement.
type SimplifiedAnswer struct {
	gorm.Model
	AnswerID            uint
	SimplifiedElementID uint
	SimplifiedElement   SimplifiedElement
	Choice              int
}

func (s *SimplifiedAnswer) SubAnswerID() uint { return s.ID }
func (s *SimplifiedAnswer) Element() Element  { return &s.SimplifiedElement }

func (s *SimplifiedAnswer) IsFinished() bool {
	return s.Choice >= MinChoice && s.Choice <= MaxChoice
}

// SetChoiceAndValidate records the user's choice, which must lie between
// MinChoice and MaxChoice.
func (s *SimplifiedAnswer) SetChoiceAndValidate(choice int) error {
	if choice < MinChoice || choice > MaxChoice {
		return fmt.Errorf("%w: can't choose outside %d to %d for a simplified answer",
			ErrValidation, MinChoice, MaxChoice)
	}
	s.Choice = choice
	return nil
}
