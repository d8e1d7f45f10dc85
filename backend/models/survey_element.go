package models

import "fmt"

// SurveyElement is a tuple of a survey question and the user's answer for
// it, if any. Constructors check that the sub answer actually answers the
// element; a pairing for an element the user has not answered carries a nil
// sub answer, which is valid.
type SurveyElement interface {
	Element() Element
	// SubAnswer is nil when the user has not answered the element yet.
	SubAnswer() SubAnswer
}

// DetailedSurveyElement pairs a DetailedElement with a DetailedAnswer.
type DetailedSurveyElement struct {
	element   *DetailedElement
	subAnswer *DetailedAnswer
}

func NewDetailedSurveyElement(element *DetailedElement, subAnswer *DetailedAnswer) (*DetailedSurveyElement, error) {
	if err := checkPairing(element, subAnswer, subAnswer == nil); err != nil {
		return nil, err
	}
	return &DetailedSurveyElement{element: element, subAnswer: subAnswer}, nil
}

func (se *DetailedSurveyElement) Element() Element { return se.element }
func (se *DetailedSurveyElement) SubAnswer() SubAnswer {
	if se.subAnswer == nil {
		return nil
	}
	return se.subAnswer
}

func (se *DetailedSurveyElement) DetailedElement() *DetailedElement { return se.element }
func (se *DetailedSurveyElement) DetailedAnswer() *DetailedAnswer   { return se.subAnswer }

// TextSurveyElement pairs a TextElement with a TextAnswer.
type TextSurveyElement struct {
	element   *TextElement
	subAnswer *TextAnswer
}

func NewTextSurveyElement(element *TextElement, subAnswer *TextAnswer) (*TextSurveyElement, error) {
	if err := checkPairing(element, subAnswer, subAnswer == nil); err != nil {
		return nil, err
	}
	return &TextSurveyElement{element: element, subAnswer: subAnswer}, nil
}

func (se *TextSurveyElement) Element() Element { return se.element }
func (se *TextSurveyElement) SubAnswer() SubAnswer {
	if se.subAnswer == nil {
		return nil
	}
	return se.subAnswer
}

func (se *TextSurveyElement) TextElement() *TextElement { return se.element }
func (se *TextSurveyElement) TextAnswer() *TextAnswer   { return se.subAnswer }

// SimplifiedSurveyElement pairs a SimplifiedElement with a SimplifiedAnswer.
type SimplifiedSurveyElement struct {
	element   *SimplifiedElement
	subAnswer *SimplifiedAnswer
}

func NewSimplifiedSurveyElement(element *SimplifiedElement, subAnswer *SimplifiedAnswer) (*SimplifiedSurveyElement, error) {
	if err := checkPairing(element, subAnswer, subAnswer == nil); err != nil {
		return nil, err
	}
	return &SimplifiedSurveyElement{element: element, subAnswer: subAnswer}, nil
}

func (se *SimplifiedSurveyElement) Element() Element { return se.element }
func (se *SimplifiedSurveyElement) SubAnswer() SubAnswer {
	if se.subAnswer == nil {
		return nil
	}
	return se.subAnswer
}

func (se *SimplifiedSurveyElement) SimplifiedElement() *SimplifiedElement { return se.element }
func (se *SimplifiedSurveyElement) SimplifiedAnswer() *SimplifiedAnswer   { return se.subAnswer }

func checkPairing(element Element, subAnswer SubAnswer, absent bool) error {
	if absent {
		return nil
	}
	if subAnswer.Element().ElementID() != element.ElementID() {
		return fmt.Errorf("%w: element %d and sub answer %d do not match",
			ErrValidation, element.ElementID(), subAnswer.SubAnswerID())
	}
	return nil
}
